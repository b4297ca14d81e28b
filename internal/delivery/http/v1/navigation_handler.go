package v1

import (
	"net/http"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/delivery/http/response"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/i18n"

	"github.com/gin-gonic/gin"
)

// NavigationHandler serves the sidebar model: the role-filtered destination
// list with labels in the caller's language.
type NavigationHandler struct {
	profiles domain.ProfileRepository
}

func NewNavigationHandler(protected *gin.RouterGroup, profiles domain.ProfileRepository) {
	handler := &NavigationHandler{profiles: profiles}
	protected.GET("/navigation", handler.List)
}

type destinationItem struct {
	ID        domain.SectionID `json:"id"`
	Label     string           `json:"label"`
	AdminOnly bool             `json:"admin_only"`
}

// List godoc
// @Summary      Visible navigation destinations
// @Description  Static order; admin-only entries appear only for admins.
// @Tags         navigation
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /navigation [get]
func (h *NavigationHandler) List(c *gin.Context) {
	profile, err := h.profiles.GetByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	lang := domain.LanguageEnglish
	if profile != nil && profile.PreferredLanguage != "" {
		lang = profile.PreferredLanguage
	}

	visible := domain.VisibleDestinations(profile)
	items := make([]destinationItem, 0, len(visible))
	for _, d := range visible {
		items = append(items, destinationItem{
			ID:        d.ID,
			Label:     i18n.Lookup(string(d.ID), lang),
			AdminOnly: d.AdminOnly,
		})
	}

	response.Success(c, http.StatusOK, "Navigation fetched", gin.H{
		"locale":       lang,
		"destinations": items,
	})
}
