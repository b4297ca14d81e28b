package postgres

import (
	"context"
	"encoding/json"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type advisoryRepo struct {
	db *pgxpool.Pool
}

func NewAdvisoryRepository(db *pgxpool.Pool) domain.AdvisoryRepository {
	return &advisoryRepo{db: db}
}

// SaveRecommendation keeps a trace of what was suggested; recommended_crops
// is a jsonb column.
func (r *advisoryRepo) SaveRecommendation(ctx context.Context, rec *domain.CropRecommendationRecord) error {
	crops, err := json.Marshal(rec.Crops)
	if err != nil {
		return err
	}
	query := `INSERT INTO crop_recommendations (id, user_id, region, soil_type, season, recommended_crops)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.db.Exec(ctx, query, uuid.NewString(), rec.UserID, rec.Region, rec.SoilType, rec.Season, crops)
	return err
}
