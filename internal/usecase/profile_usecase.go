package usecase

import (
	"context"
	"time"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// profileUsecase serves the Farmer Portal: own-profile reads/updates and soil
// test submissions. Identity always comes from the request context, never
// from the payload.
type profileUsecase struct {
	profileRepo domain.ProfileRepository
	soilRepo    domain.SoilTestRepository
	validate    *validator.Validate
}

func NewProfileUsecase(profileRepo domain.ProfileRepository, soilRepo domain.SoilTestRepository, validate *validator.Validate) domain.ProfileUsecase {
	return &profileUsecase{
		profileRepo: profileRepo,
		soilRepo:    soilRepo,
		validate:    validate,
	}
}

func (u *profileUsecase) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	ctxID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if ctxID != id {
		return nil, apperror.Forbidden("You can only view your own profile")
	}

	profile, err := u.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if profile == nil {
		return nil, apperror.NotFound("Profile not found")
	}
	return profile, nil
}

func (u *profileUsecase) UpdateProfile(ctx context.Context, id string, patch domain.ProfileUpdate) (*domain.Profile, error) {
	profile, err := u.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.validate.Struct(patch); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	if patch.FullName != "" {
		profile.FullName = patch.FullName
	}
	if patch.Phone != nil {
		profile.Phone = patch.Phone
	}
	if patch.Location != nil {
		profile.Location = patch.Location
	}
	profile.UpdatedAt = time.Now()

	if err := u.profileRepo.Update(ctx, profile); err != nil {
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

func (u *profileUsecase) SetLanguage(ctx context.Context, id string, lang domain.Language) error {
	ctxID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxID != id {
		return apperror.Forbidden("You can only change your own language")
	}
	if lang != domain.LanguageEnglish && lang != domain.LanguageHindi {
		return apperror.BadRequest("Unsupported language")
	}
	if err := u.profileRepo.UpdateLanguage(ctx, id, lang); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *profileUsecase) SubmitSoilTest(ctx context.Context, test *domain.SoilTest) error {
	ctxID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	// Force ownership from context
	test.UserID = ctxID

	if test.Location == "" {
		return apperror.BadRequest("Location is required")
	}
	if err := u.soilRepo.Insert(ctx, test); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *profileUsecase) RecentSoilTests(ctx context.Context, userID string, limit int) ([]domain.SoilTest, error) {
	ctxID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxID != userID {
		return nil, apperror.Forbidden("You can only view your own soil tests")
	}
	tests, err := u.soilRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return tests, nil
}
