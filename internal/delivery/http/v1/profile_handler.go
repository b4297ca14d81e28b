package v1

import (
	"net/http"
	"strconv"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/delivery/http/response"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	profile := protected.Group("/profile")
	{
		profile.GET("", handler.Get)
		profile.PATCH("", handler.Update)
		profile.PUT("/language", handler.SetLanguage)
	}

	portal := protected.Group("/portal")
	{
		portal.POST("/soil-tests", handler.SubmitSoilTest)
		portal.GET("/soil-tests", handler.ListSoilTests)
	}
}

func currentUserID(c *gin.Context) string {
	v, _ := c.Get(string(domain.KeyUserID))
	id, _ := v.(string)
	return id
}

// Get godoc
// @Summary      Fetch own profile
// @Tags         profile
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileUC.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile fetched", profile)
}

// Update godoc
// @Summary      Update own profile
// @Tags         profile
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        profile  body      domain.ProfileUpdate  true  "Fields to change"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /profile [patch]
func (h *ProfileHandler) Update(c *gin.Context) {
	var patch domain.ProfileUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile, err := h.profileUC.UpdateProfile(c.Request.Context(), currentUserID(c), patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", profile)
}

type SetLanguageRequest struct {
	Language string `json:"language" binding:"required,oneof=en hi"`
}

// SetLanguage godoc
// @Summary      Change preferred language
// @Description  Persists the language preference. The client applies the change optimistically; a failure here leaves the stored preference unchanged for the next session.
// @Tags         profile
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        language  body      SetLanguageRequest  true  "en or hi"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /profile/language [put]
func (h *ProfileHandler) SetLanguage(c *gin.Context) {
	var req SetLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.profileUC.SetLanguage(c.Request.Context(), currentUserID(c), domain.Language(req.Language)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Language updated", gin.H{"language": req.Language})
}

type SoilTestRequest struct {
	Location      string   `json:"location" binding:"required,max=120"`
	PHLevel       *float64 `json:"ph_level" binding:"omitempty,gte=0,lte=14"`
	Nitrogen      *float64 `json:"nitrogen" binding:"omitempty,gte=0"`
	Phosphorus    *float64 `json:"phosphorus" binding:"omitempty,gte=0"`
	Potassium     *float64 `json:"potassium" binding:"omitempty,gte=0"`
	OrganicCarbon *float64 `json:"organic_carbon" binding:"omitempty,gte=0"`
}

// SubmitSoilTest godoc
// @Summary      Record a soil test
// @Tags         portal
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        test  body      SoilTestRequest  true  "Soil readings"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /portal/soil-tests [post]
func (h *ProfileHandler) SubmitSoilTest(c *gin.Context) {
	var req SoilTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	test := &domain.SoilTest{
		Location:      req.Location,
		PHLevel:       req.PHLevel,
		Nitrogen:      req.Nitrogen,
		Phosphorus:    req.Phosphorus,
		Potassium:     req.Potassium,
		OrganicCarbon: req.OrganicCarbon,
	}
	if err := h.profileUC.SubmitSoilTest(c.Request.Context(), test); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Soil test recorded", test)
}

// ListSoilTests godoc
// @Summary      Recent soil tests for the caller
// @Tags         portal
// @Security     BearerAuth
// @Produce      json
// @Param        limit  query     int  false  "Max results (default 10)"
// @Success      200  {object}  response.Response
// @Router       /portal/soil-tests [get]
func (h *ProfileHandler) ListSoilTests(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	tests, err := h.profileUC.RecentSoilTests(c.Request.Context(), currentUserID(c), limit)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Soil tests fetched", tests)
}
