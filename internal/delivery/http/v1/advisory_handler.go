package v1

import (
	"io"
	"net/http"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/delivery/http/response"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 5 * 1024 * 1024

type AdvisoryHandler struct {
	advisoryUC domain.AdvisoryUsecase
}

func NewAdvisoryHandler(protected *gin.RouterGroup, advisoryUC domain.AdvisoryUsecase) {
	handler := &AdvisoryHandler{advisoryUC: advisoryUC}

	advisory := protected.Group("/advisory")
	{
		advisory.POST("/crops", handler.RecommendCrops)
		advisory.POST("/prices", handler.PredictPrices)
		advisory.POST("/disease", handler.DetectDisease)
	}
}

type CropRecommendationRequest struct {
	Region   string `json:"region" binding:"required,max=120"`
	SoilType string `json:"soil_type" binding:"omitempty,max=60"`
	Season   string `json:"season" binding:"required,oneof=kharif rabi zaid perennial"`
}

// RecommendCrops godoc
// @Summary      Crop recommendations for a region and season
// @Tags         advisory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CropRecommendationRequest  true  "Region, soil and season"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /advisory/crops [post]
func (h *AdvisoryHandler) RecommendCrops(c *gin.Context) {
	var req CropRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	crops, err := h.advisoryUC.RecommendCrops(c.Request.Context(), req.Region, req.SoilType, domain.Season(req.Season))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recommendations generated", crops)
}

type PricePredictionRequest struct {
	Crop  string `json:"crop" binding:"required,max=60"`
	Mandi string `json:"mandi" binding:"omitempty,max=120"`
}

// PredictPrices godoc
// @Summary      7-day price forecast for a crop
// @Tags         advisory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      PricePredictionRequest  true  "Crop and optional mandi"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /advisory/prices [post]
func (h *AdvisoryHandler) PredictPrices(c *gin.Context) {
	var req PricePredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	forecast, err := h.advisoryUC.PredictPrices(c.Request.Context(), req.Crop, req.Mandi)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Forecast generated", forecast)
}

// DetectDisease godoc
// @Summary      Detect crop disease from a leaf photo
// @Tags         advisory
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "Leaf photo (jpeg or png, max 5MB)"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /advisory/disease [post]
func (h *AdvisoryHandler) DetectDisease(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.Error(apperror.BadRequest("image file is required"))
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		c.Error(apperror.BadRequest("Image exceeds the 5MB limit"))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	result, err := h.advisoryUC.DetectDisease(c.Request.Context(), data)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Detection complete", result)
}
