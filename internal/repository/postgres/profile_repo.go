package postgres

import (
	"context"
	"errors"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

const profileColumns = `id, full_name, phone, role, location, preferred_language, created_at, updated_at`

// GetByID returns (nil, nil) when the profile does not exist yet; the session
// store relies on that to handle the post-signup trigger race.
func (r *profileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	var p domain.Profile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.FullName, &p.Phone, &p.Role, &p.Location, &p.PreferredLanguage, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	query := `INSERT INTO profiles (id, full_name, phone, role, location, preferred_language, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		profile.ID, profile.FullName, profile.Phone, profile.Role,
		profile.Location, profile.PreferredLanguage, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("Profile already exists for this user")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *profileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	query := `UPDATE profiles
              SET full_name = $2, phone = $3, location = $4, updated_at = $5
              WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		profile.ID, profile.FullName, profile.Phone, profile.Location, profile.UpdatedAt,
	)
	return err
}

func (r *profileRepo) UpdateLanguage(ctx context.Context, id string, lang domain.Language) error {
	query := `UPDATE profiles SET preferred_language = $2, updated_at = now() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, lang)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Profile not found")
	}
	return nil
}

func (r *profileRepo) List(ctx context.Context, role string, page, pageSize int) ([]domain.Profile, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM profiles WHERE ($1 = '' OR role = $1)`
	if err := r.db.QueryRow(ctx, countQuery, role).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + profileColumns + ` FROM profiles
              WHERE ($1 = '' OR role = $1)
              ORDER BY created_at DESC
              LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, role, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(
			&p.ID, &p.FullName, &p.Phone, &p.Role, &p.Location, &p.PreferredLanguage, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, p)
	}
	return profiles, total, rows.Err()
}
