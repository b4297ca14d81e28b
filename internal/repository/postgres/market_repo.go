package postgres

import (
	"context"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type marketRepo struct {
	db *pgxpool.Pool
}

func NewMarketRepository(db *pgxpool.Pool) domain.MarketRepository {
	return &marketRepo{db: db}
}

func (r *marketRepo) ListCrops(ctx context.Context) ([]domain.Crop, error) {
	query := `SELECT id, name_en, name_hi, category, season, soil_type, water_requirement, duration_days, created_at
              FROM crops ORDER BY name_en`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var crops []domain.Crop
	for rows.Next() {
		var c domain.Crop
		if err := rows.Scan(
			&c.ID, &c.NameEn, &c.NameHi, &c.Category, &c.Season,
			pq.Array(&c.SoilType), &c.WaterRequirement, &c.DurationDays, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		crops = append(crops, c)
	}
	return crops, rows.Err()
}

func (r *marketRepo) ListMandis(ctx context.Context) ([]domain.Mandi, error) {
	query := `SELECT id, name, city, state, latitude, longitude, contact, created_at
              FROM mandis ORDER BY city`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mandis []domain.Mandi
	for rows.Next() {
		var m domain.Mandi
		if err := rows.Scan(
			&m.ID, &m.Name, &m.City, &m.State, &m.Latitude, &m.Longitude, &m.Contact, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		mandis = append(mandis, m)
	}
	return mandis, rows.Err()
}

// SearchPrices returns the newest price rows matching the query, with the
// mandi and crop joined in.
func (r *marketRepo) SearchPrices(ctx context.Context, q domain.PriceQuery) ([]domain.MandiPrice, error) {
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := `SELECT p.id, p.mandi_id, p.crop_id, p.date, p.modal_price, p.min_price, p.max_price,
                     p.arrivals_tonnes, p.created_at,
                     m.id, m.name, m.city, m.state, m.latitude, m.longitude, m.contact, m.created_at,
                     c.id, c.name_en, c.name_hi, c.category, c.season, c.soil_type, c.water_requirement,
                     c.duration_days, c.created_at
              FROM mandi_prices p
              JOIN mandis m ON m.id = p.mandi_id
              JOIN crops c ON c.id = p.crop_id
              WHERE ($1 = '' OR p.crop_id = $1)
                AND ($2 = '' OR m.city ILIKE '%' || $2 || '%')
              ORDER BY p.date DESC
              LIMIT $3`
	rows, err := r.db.Query(ctx, query, q.CropID, q.City, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prices []domain.MandiPrice
	for rows.Next() {
		var p domain.MandiPrice
		var m domain.Mandi
		var c domain.Crop
		if err := rows.Scan(
			&p.ID, &p.MandiID, &p.CropID, &p.Date, &p.ModalPrice, &p.MinPrice, &p.MaxPrice,
			&p.ArrivalsTonnes, &p.CreatedAt,
			&m.ID, &m.Name, &m.City, &m.State, &m.Latitude, &m.Longitude, &m.Contact, &m.CreatedAt,
			&c.ID, &c.NameEn, &c.NameHi, &c.Category, &c.Season, pq.Array(&c.SoilType), &c.WaterRequirement,
			&c.DurationDays, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		p.Mandi = &m
		p.Crop = &c
		prices = append(prices, p)
	}
	return prices, rows.Err()
}
