package v1

import (
	"net/http"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/delivery/http/response"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type WeatherHandler struct {
	weather domain.WeatherService
}

func NewWeatherHandler(protected *gin.RouterGroup, weather domain.WeatherService) {
	handler := &WeatherHandler{weather: weather}
	protected.GET("/weather", handler.Forecast)
}

// Forecast godoc
// @Summary      Current weather and 5-day forecast
// @Tags         weather
// @Security     BearerAuth
// @Produce      json
// @Param        city  query  string  true  "City name"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /weather [get]
func (h *WeatherHandler) Forecast(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		c.Error(apperror.BadRequest("city query parameter is required"))
		return
	}

	forecast, err := h.weather.Forecast(c.Request.Context(), city)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Forecast fetched", forecast)
}
