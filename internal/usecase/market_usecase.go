package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/apperror"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

type marketUsecase struct {
	repo     domain.MarketRepository
	cache    *goredis.Client
	cacheTTL time.Duration
}

// NewMarketUsecase wires the mandi price search. cache may be nil, in which
// case every query goes to the database.
func NewMarketUsecase(repo domain.MarketRepository, cache *goredis.Client, cacheTTL time.Duration) domain.MarketUsecase {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &marketUsecase{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

func (u *marketUsecase) ListCrops(ctx context.Context) ([]domain.Crop, error) {
	crops, err := u.repo.ListCrops(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return crops, nil
}

func (u *marketUsecase) ListMandis(ctx context.Context) ([]domain.Mandi, error) {
	mandis, err := u.repo.ListMandis(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return mandis, nil
}

func (u *marketUsecase) SearchPrices(ctx context.Context, q domain.PriceQuery) ([]domain.MandiPrice, error) {
	if q.CropID == "" && q.City == "" {
		return nil, apperror.BadRequest("Provide a crop or a city to search prices")
	}

	cacheKey := fmt.Sprintf("prices:%s:%s:%d", q.CropID, q.City, q.Limit)
	if u.cache != nil {
		if raw, err := u.cache.Get(ctx, cacheKey).Result(); err == nil {
			var cached []domain.MandiPrice
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached, nil
			}
		}
	}

	prices, err := u.repo.SearchPrices(ctx, q)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if u.cache != nil {
		if raw, err := json.Marshal(prices); err == nil {
			if err := u.cache.Set(ctx, cacheKey, raw, u.cacheTTL).Err(); err != nil {
				logger.Log.Warn("price cache write failed", "key", cacheKey, "error", err)
			}
		}
	}
	return prices, nil
}

// DistanceKm is the haversine distance between two points. Used by the mandi
// locator to sort by proximity when coordinates are available.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
