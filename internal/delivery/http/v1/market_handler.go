package v1

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/delivery/http/response"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/usecase"

	"github.com/gin-gonic/gin"
)

type MarketHandler struct {
	marketUC domain.MarketUsecase
}

func NewMarketHandler(protected *gin.RouterGroup, marketUC domain.MarketUsecase) {
	handler := &MarketHandler{marketUC: marketUC}

	market := protected.Group("/market")
	{
		market.GET("/crops", handler.ListCrops)
		market.GET("/mandis", handler.ListMandis)
		market.GET("/prices", handler.SearchPrices)
	}
}

// ListCrops godoc
// @Summary      Crop catalogue
// @Tags         market
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /market/crops [get]
func (h *MarketHandler) ListCrops(c *gin.Context) {
	crops, err := h.marketUC.ListCrops(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Crops fetched", crops)
}

type mandiWithDistance struct {
	domain.Mandi
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// ListMandis godoc
// @Summary      Mandi directory
// @Description  Pass lat/lon to get mandis sorted by distance.
// @Tags         market
// @Security     BearerAuth
// @Produce      json
// @Param        lat  query  number  false  "Caller latitude"
// @Param        lon  query  number  false  "Caller longitude"
// @Success      200  {object}  response.Response
// @Router       /market/mandis [get]
func (h *MarketHandler) ListMandis(c *gin.Context) {
	mandis, err := h.marketUC.ListMandis(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)

	out := make([]mandiWithDistance, 0, len(mandis))
	for _, m := range mandis {
		item := mandiWithDistance{Mandi: m}
		if latErr == nil && lonErr == nil && m.Latitude != nil && m.Longitude != nil {
			d := usecase.DistanceKm(lat, lon, *m.Latitude, *m.Longitude)
			item.DistanceKm = &d
		}
		out = append(out, item)
	}

	if latErr == nil && lonErr == nil {
		sort.SliceStable(out, func(i, j int) bool {
			di, dj := out[i].DistanceKm, out[j].DistanceKm
			if di == nil {
				return false
			}
			if dj == nil {
				return true
			}
			return *di < *dj
		})
	}

	response.Success(c, http.StatusOK, "Mandis fetched", out)
}

// SearchPrices godoc
// @Summary      Search mandi prices
// @Tags         market
// @Security     BearerAuth
// @Produce      json
// @Param        crop_id  query  string  false  "Crop id"
// @Param        city     query  string  false  "City name (partial match)"
// @Param        limit    query  int     false  "Max rows (default 20, max 100)"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /market/prices [get]
func (h *MarketHandler) SearchPrices(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	prices, err := h.marketUC.SearchPrices(c.Request.Context(), domain.PriceQuery{
		CropID: c.Query("crop_id"),
		City:   c.Query("city"),
		Limit:  limit,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Prices fetched", prices)
}
