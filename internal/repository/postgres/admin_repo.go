package postgres

import (
	"context"
	"time"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type adminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) domain.AdminRepository {
	return &adminRepo{db: db}
}

// GetStats fetches the admin panel counters. Individual failures zero the
// counter rather than failing the whole panel.
func (r *adminRepo) GetStats(ctx context.Context) (*domain.PlatformStats, error) {
	stats := &domain.PlatformStats{
		SystemHealth: domain.SystemHealth{
			Status:      "healthy",
			LastChecked: time.Now().Format(time.RFC3339),
		},
	}

	counts := []struct {
		query string
		dest  *int64
	}{
		{`SELECT COUNT(*) FROM profiles`, &stats.TotalProfiles},
		{`SELECT COUNT(*) FROM profiles WHERE role = 'farmer'`, &stats.ProfilesByRole.Farmer},
		{`SELECT COUNT(*) FROM profiles WHERE role = 'admin'`, &stats.ProfilesByRole.Admin},
		{`SELECT COUNT(*) FROM mandis`, &stats.TotalMandis},
		{`SELECT COUNT(*) FROM crops`, &stats.TotalCrops},
		{`SELECT COUNT(*) FROM mandi_prices`, &stats.PriceRecords},
	}

	for _, c := range counts {
		if err := r.db.QueryRow(ctx, c.query).Scan(c.dest); err != nil {
			*c.dest = 0
			stats.SystemHealth.Status = "degraded"
		}
	}

	return stats, nil
}
