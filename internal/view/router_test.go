package view_test

import (
	"context"
	"testing"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/view"

	"github.com/stretchr/testify/assert"
)

func staticScreen(payload string) view.Screen {
	return func(ctx context.Context, p *domain.Profile) (interface{}, error) {
		return payload, nil
	}
}

func testRegistry() view.Registry {
	return view.Registry{
		domain.SectionDashboard:  staticScreen("dashboard-payload"),
		domain.SectionWeather:    staticScreen("weather-payload"),
		domain.SectionAdminPanel: staticScreen("admin-payload"),
	}
}

func TestStageFor(t *testing.T) {
	assert.Equal(t, view.StageLoading, view.StageFor(domain.Session{State: domain.SessionLoading}))
	assert.Equal(t, view.StageAuth, view.StageFor(domain.Session{State: domain.SessionUnauthenticated}))
	assert.Equal(t, view.StageMain, view.StageFor(domain.Session{State: domain.SessionAuthenticated}))
}

func TestRouterStartsAtDashboard(t *testing.T) {
	r := view.NewRouter(testRegistry())
	assert.Equal(t, domain.SectionDashboard, r.Active())

	id, payload, err := r.Render(context.Background(), nil)
	assert.NoError(t, err)
	assert.Equal(t, domain.SectionDashboard, id)
	assert.Equal(t, "dashboard-payload", payload)
}

func TestNavigate(t *testing.T) {
	t.Run("renders the requested section", func(t *testing.T) {
		r := view.NewRouter(testRegistry())
		r.Navigate(domain.SectionWeather)

		id, payload, err := r.Render(context.Background(), nil)
		assert.NoError(t, err)
		assert.Equal(t, domain.SectionWeather, id)
		assert.Equal(t, "weather-payload", payload)
	})

	t.Run("unknown section falls back to the dashboard", func(t *testing.T) {
		r := view.NewRouter(testRegistry())
		r.Navigate(domain.SectionID("bogus"))

		id, payload, err := r.Render(context.Background(), nil)
		assert.NoError(t, err)
		assert.Equal(t, domain.SectionDashboard, id)
		assert.Equal(t, "dashboard-payload", payload)
	})

	t.Run("unregistered but known section also falls back", func(t *testing.T) {
		r := view.NewRouter(testRegistry())
		r.Navigate(domain.SectionAnalytics)

		id, _, err := r.Render(context.Background(), nil)
		assert.NoError(t, err)
		assert.Equal(t, domain.SectionDashboard, id)
	})

	t.Run("does not re-check roles: a farmer navigating to the admin panel renders it", func(t *testing.T) {
		farmer := &domain.Profile{ID: "f1", Role: domain.RoleFarmer}

		r := view.NewRouter(testRegistry())
		r.Navigate(domain.SectionAdminPanel)

		id, payload, err := r.Render(context.Background(), farmer)
		assert.NoError(t, err)
		assert.Equal(t, domain.SectionAdminPanel, id)
		assert.Equal(t, "admin-payload", payload)
	})
}
