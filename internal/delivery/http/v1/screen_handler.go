package v1

import (
	"context"
	"net/http"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/delivery/http/response"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/i18n"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/view"

	"github.com/gin-gonic/gin"
)

// ScreenHandler exposes the section router. Navigation is deliberately
// permissive: any section id renders, with unknown ids falling back to the
// dashboard. Data-bearing admin endpoints stay role-gated separately.
type ScreenHandler struct {
	screens  view.Registry
	profiles domain.ProfileRepository
}

func NewScreenHandler(
	protected *gin.RouterGroup,
	profiles domain.ProfileRepository,
	marketUC domain.MarketUsecase,
	weather domain.WeatherService,
	advisoryUC domain.AdvisoryUsecase,
	adminRepo domain.AdminRepository,
	soilRepo domain.SoilTestRepository,
) {
	handler := &ScreenHandler{profiles: profiles}
	handler.screens = buildScreens(marketUC, weather, advisoryUC, adminRepo, soilRepo)

	protected.GET("/screens/:section", handler.Render)
}

// buildScreens assembles the payload producer for each section. Screens get
// only the caller's profile; section-specific filters live on the dedicated
// endpoints.
func buildScreens(
	marketUC domain.MarketUsecase,
	weather domain.WeatherService,
	advisoryUC domain.AdvisoryUsecase,
	adminRepo domain.AdminRepository,
	soilRepo domain.SoilTestRepository,
) view.Registry {
	defaultCity := func(p *domain.Profile) string {
		if p != nil && p.Location != nil && *p.Location != "" {
			return *p.Location
		}
		return "Delhi"
	}

	return view.Registry{
		domain.SectionDashboard: func(ctx context.Context, p *domain.Profile) (interface{}, error) {
			forecast, err := weather.Forecast(ctx, defaultCity(p))
			if err != nil {
				return nil, err
			}
			return gin.H{"profile": p, "weather": forecast.Current}, nil
		},
		domain.SectionMandiPrices: func(ctx context.Context, p *domain.Profile) (interface{}, error) {
			crops, err := marketUC.ListCrops(ctx)
			if err != nil {
				return nil, err
			}
			mandis, err := marketUC.ListMandis(ctx)
			if err != nil {
				return nil, err
			}
			return gin.H{"crops": crops, "mandis": mandis}, nil
		},
		domain.SectionWeather: func(ctx context.Context, p *domain.Profile) (interface{}, error) {
			return weather.Forecast(ctx, defaultCity(p))
		},
		domain.SectionCropRecommendation: func(ctx context.Context, p *domain.Profile) (interface{}, error) {
			return gin.H{
				"seasons":    []domain.Season{domain.SeasonKharif, domain.SeasonRabi, domain.SeasonZaid},
				"soil_types": []string{"alluvial", "black", "red", "laterite", "sandy", "clay"},
			}, nil
		},
		domain.SectionPricePrediction: func(ctx context.Context, p *domain.Profile) (interface{}, error) {
			crops, err := marketUC.ListCrops(ctx)
			if err != nil {
				return nil, err
			}
			return gin.H{"crops": crops}, nil
		},
		domain.SectionMandiLocator: func(ctx context.Context, p *domain.Profile) (interface{}, error) {
			mandis, err := marketUC.ListMandis(ctx)
			if err != nil {
				return nil, err
			}
			return gin.H{"mandis": mandis}, nil
		},
		domain.SectionAnalytics: func(ctx context.Context, p *domain.Profile) (interface{}, error) {
			crops, err := marketUC.ListCrops(ctx)
			if err != nil {
				return nil, err
			}
			return gin.H{"crops": crops, "charts": []string{"price_trend", "arrivals", "seasonal_index"}}, nil
		},
		domain.SectionFarmerPortal: func(ctx context.Context, p *domain.Profile) (interface{}, error) {
			if p == nil {
				return gin.H{"profile": nil, "soil_tests": nil}, nil
			}
			tests, err := soilRepo.ListByUser(ctx, p.ID, 5)
			if err != nil {
				return nil, err
			}
			return gin.H{"profile": p, "soil_tests": tests}, nil
		},
		domain.SectionDiseaseDetection: func(ctx context.Context, p *domain.Profile) (interface{}, error) {
			return gin.H{"max_image_mb": 5, "formats": []string{"jpeg", "png"}}, nil
		},
		domain.SectionAdminPanel: func(ctx context.Context, p *domain.Profile) (interface{}, error) {
			stats, err := adminRepo.GetStats(ctx)
			if err != nil {
				return nil, err
			}
			return gin.H{"stats": stats}, nil
		},
	}
}

// Render godoc
// @Summary      Render a dashboard section
// @Description  Returns the payload for the named section. Unknown sections render the dashboard.
// @Tags         screens
// @Security     BearerAuth
// @Produce      json
// @Param        section  path      string  true  "Section id"
// @Success      200  {object}  response.Response
// @Router       /screens/{section} [get]
func (h *ScreenHandler) Render(c *gin.Context) {
	profile, err := h.profiles.GetByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	router := view.NewRouter(h.screens)
	router.Navigate(domain.SectionID(c.Param("section")))

	rendered, payload, err := router.Render(c.Request.Context(), profile)
	if err != nil {
		c.Error(err)
		return
	}

	lang := domain.LanguageEnglish
	if profile != nil && profile.PreferredLanguage != "" {
		lang = profile.PreferredLanguage
	}

	response.Success(c, http.StatusOK, "Screen rendered", gin.H{
		"section": rendered,
		"title":   i18n.Lookup(string(rendered), lang),
		"payload": payload,
	})
}
