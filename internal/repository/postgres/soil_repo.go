package postgres

import (
	"context"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type soilTestRepo struct {
	db *pgxpool.Pool
}

func NewSoilTestRepository(db *pgxpool.Pool) domain.SoilTestRepository {
	return &soilTestRepo{db: db}
}

func (r *soilTestRepo) Insert(ctx context.Context, test *domain.SoilTest) error {
	if test.ID == "" {
		test.ID = uuid.NewString()
	}
	query := `INSERT INTO soil_tests (id, user_id, location, ph_level, nitrogen, phosphorus, potassium, organic_carbon)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		test.ID, test.UserID, test.Location, test.PHLevel,
		test.Nitrogen, test.Phosphorus, test.Potassium, test.OrganicCarbon,
	)
	return err
}

func (r *soilTestRepo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.SoilTest, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT id, user_id, location, ph_level, nitrogen, phosphorus, potassium, organic_carbon, created_at
              FROM soil_tests WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tests []domain.SoilTest
	for rows.Next() {
		var t domain.SoilTest
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Location, &t.PHLevel,
			&t.Nitrogen, &t.Phosphorus, &t.Potassium, &t.OrganicCarbon, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}
