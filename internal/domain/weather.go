package domain

import "context"

type WeatherReport struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
	WindSpeed   float64 `json:"wind_speed"`
}

type ForecastDay struct {
	Date        string  `json:"date"`
	Temp        float64 `json:"temp"`
	Humidity    float64 `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
	Description string  `json:"description"`
}

type WeatherForecast struct {
	Current WeatherReport `json:"current"`
	Days    []ForecastDay `json:"forecast_days"`
}

// WeatherService produces the forecast for a city. The bundled implementation
// is a simulator; a real provider can be swapped in behind this interface.
type WeatherService interface {
	Forecast(ctx context.Context, city string) (*WeatherForecast, error)
}
