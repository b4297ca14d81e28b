package v1

import (
	"net/http"
	"strconv"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/delivery/http/response"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUC domain.AdminUsecase
}

// NewAdminHandler registers the admin panel routes. The group is expected to
// carry RequireRole(admin); the usecase re-checks from context anyway.
func NewAdminHandler(admin *gin.RouterGroup, adminUC domain.AdminUsecase) {
	handler := &AdminHandler{adminUC: adminUC}

	admin.GET("/stats", handler.Stats)
	admin.GET("/profiles", handler.ListProfiles)
}

// Stats godoc
// @Summary      Platform statistics
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminUC.GetStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Stats fetched", stats)
}

// ListProfiles godoc
// @Summary      List user profiles
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        role       query  string  false  "Filter by role (farmer or admin)"
// @Param        page       query  int     false  "Page number (default 1)"
// @Param        page_size  query  int     false  "Page size (default 20, max 100)"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /admin/profiles [get]
func (h *AdminHandler) ListProfiles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.adminUC.ListProfiles(c.Request.Context(), c.Query("role"), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profiles fetched", result)
}
