package usecase

import (
	"context"
	"math/rand"
	"time"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/apperror"
)

var forecastDescriptions = []string{"Sunny", "Partly Cloudy", "Cloudy", "Rainy"}

// weatherSimulator generates plausible readings for a city. Values follow the
// ranges a north-Indian growing season sees; no external provider is called.
type weatherSimulator struct {
	rng *rand.Rand
}

func NewWeatherService() domain.WeatherService {
	return &weatherSimulator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *weatherSimulator) Forecast(ctx context.Context, city string) (*domain.WeatherForecast, error) {
	if city == "" {
		return nil, apperror.BadRequest("City is required")
	}

	current := domain.WeatherReport{
		City:        city,
		Temperature: round1(28 + s.rng.Float64()*10),
		Humidity:    round1(60 + s.rng.Float64()*30),
		Rainfall:    round1(s.rng.Float64() * 10),
		WindSpeed:   round1(10 + s.rng.Float64()*20),
	}

	days := make([]domain.ForecastDay, 0, 5)
	for i := 1; i <= 5; i++ {
		days = append(days, domain.ForecastDay{
			Date:        time.Now().AddDate(0, 0, i).Format("2006-01-02"),
			Temp:        round1(25 + s.rng.Float64()*10),
			Humidity:    round1(55 + s.rng.Float64()*35),
			Rainfall:    round1(s.rng.Float64() * 15),
			Description: forecastDescriptions[s.rng.Intn(len(forecastDescriptions))],
		})
	}

	return &domain.WeatherForecast{Current: current, Days: days}, nil
}

func round1(v float64) float64 {
	return float64(int(v*10)) / 10
}
