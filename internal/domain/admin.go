package domain

import "context"

// PlatformStats is the admin panel summary.
type PlatformStats struct {
	TotalProfiles  int64        `json:"total_profiles"`
	ProfilesByRole RoleCounts   `json:"profiles_by_role"`
	TotalMandis    int64        `json:"total_mandis"`
	TotalCrops     int64        `json:"total_crops"`
	PriceRecords   int64        `json:"price_records"`
	SystemHealth   SystemHealth `json:"system_health"`
}

type RoleCounts struct {
	Farmer int64 `json:"farmer"`
	Admin  int64 `json:"admin"`
}

type SystemHealth struct {
	Status      string `json:"status"` // healthy | degraded | down
	LastChecked string `json:"last_checked"`
}

type PaginatedResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

type AdminRepository interface {
	GetStats(ctx context.Context) (*PlatformStats, error)
}

type AdminUsecase interface {
	GetStats(ctx context.Context) (*PlatformStats, error)
	ListProfiles(ctx context.Context, role string, page, pageSize int) (*PaginatedResult[Profile], error)
}
