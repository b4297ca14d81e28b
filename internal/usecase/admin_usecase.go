package usecase

import (
	"context"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/apperror"
)

type adminUsecase struct {
	adminRepo   domain.AdminRepository
	profileRepo domain.ProfileRepository
}

func NewAdminUsecase(adminRepo domain.AdminRepository, profileRepo domain.ProfileRepository) domain.AdminUsecase {
	return &adminUsecase{adminRepo: adminRepo, profileRepo: profileRepo}
}

func requireAdmin(ctx context.Context) error {
	role, ok := ctx.Value(domain.KeyUserRole).(string)
	if !ok || role != string(domain.RoleAdmin) {
		return apperror.Forbidden("Admin access required")
	}
	return nil
}

func (u *adminUsecase) GetStats(ctx context.Context) (*domain.PlatformStats, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	stats, err := u.adminRepo.GetStats(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return stats, nil
}

func (u *adminUsecase) ListProfiles(ctx context.Context, role string, page, pageSize int) (*domain.PaginatedResult[domain.Profile], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if role != "" && role != string(domain.RoleFarmer) && role != string(domain.RoleAdmin) {
		return nil, apperror.BadRequest("Unknown role filter")
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	profiles, total, err := u.profileRepo.List(ctx, role, page, pageSize)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}
	return &domain.PaginatedResult[domain.Profile]{
		Data:       profiles,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}
