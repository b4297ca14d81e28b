package domain_test

import (
	"testing"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDestinationsOrder(t *testing.T) {
	all := domain.Destinations()
	assert.Len(t, all, 10)
	assert.Equal(t, domain.SectionDashboard, all[0].ID)
	assert.Equal(t, domain.SectionAdminPanel, all[len(all)-1].ID)
	assert.True(t, all[len(all)-1].AdminOnly)
}

func TestVisibleDestinations(t *testing.T) {
	farmer := &domain.Profile{ID: "f1", Role: domain.RoleFarmer}
	admin := &domain.Profile{ID: "a1", Role: domain.RoleAdmin}

	t.Run("farmer sees everything except the admin panel", func(t *testing.T) {
		visible := domain.VisibleDestinations(farmer)
		assert.Len(t, visible, 9)
		for _, d := range visible {
			assert.NotEqual(t, domain.SectionAdminPanel, d.ID)
		}
	})

	t.Run("admin sees the full list", func(t *testing.T) {
		visible := domain.VisibleDestinations(admin)
		assert.Len(t, visible, 10)
		assert.Equal(t, domain.SectionAdminPanel, visible[9].ID)
	})

	t.Run("nil profile gets the non-admin subset", func(t *testing.T) {
		visible := domain.VisibleDestinations(nil)
		assert.Len(t, visible, 9)
	})

	t.Run("order matches the static declaration for every role", func(t *testing.T) {
		all := domain.Destinations()
		visible := domain.VisibleDestinations(admin)
		for i := range all {
			assert.Equal(t, all[i].ID, visible[i].ID)
		}

		farmerVisible := domain.VisibleDestinations(farmer)
		j := 0
		for _, d := range all {
			if d.AdminOnly {
				continue
			}
			assert.Equal(t, d.ID, farmerVisible[j].ID)
			j++
		}
	})
}
