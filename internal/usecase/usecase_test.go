package usecase_test

import (
	"context"
	"testing"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/usecase"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	logger.Init()
}

// Mock Repositories
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) UpdateLanguage(ctx context.Context, id string, lang domain.Language) error {
	return m.Called(ctx, id, lang).Error(0)
}

func (m *MockProfileRepo) List(ctx context.Context, role string, page, pageSize int) ([]domain.Profile, int64, error) {
	args := m.Called(ctx, role, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Profile), args.Get(1).(int64), args.Error(2)
}

type MockSoilRepo struct {
	mock.Mock
}

func (m *MockSoilRepo) Insert(ctx context.Context, test *domain.SoilTest) error {
	return m.Called(ctx, test).Error(0)
}

func (m *MockSoilRepo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.SoilTest, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SoilTest), args.Error(1)
}

type MockAdvisoryRepo struct {
	mock.Mock
}

func (m *MockAdvisoryRepo) SaveRecommendation(ctx context.Context, rec *domain.CropRecommendationRecord) error {
	return m.Called(ctx, rec).Error(0)
}

type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) GetStats(ctx context.Context) (*domain.PlatformStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlatformStats), args.Error(1)
}

func TestProfileIDOR(t *testing.T) {
	uc := usecase.NewProfileUsecase(new(MockProfileRepo), new(MockSoilRepo), validator.New())

	t.Run("Should fail when context user does not match argument", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), domain.KeyUserID, "user1")
		_, err := uc.GetProfile(ctx, "user2")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only view your own profile")
	})

	t.Run("Should fail safely when context user is missing", func(t *testing.T) {
		_, err := uc.GetProfile(context.Background(), "user1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "User not authenticated")
	})
}

func TestSubmitSoilTestForcesOwnership(t *testing.T) {
	soilRepo := new(MockSoilRepo)
	uc := usecase.NewProfileUsecase(new(MockProfileRepo), soilRepo, validator.New())

	ctx := context.WithValue(context.Background(), domain.KeyUserID, "user1")
	test := &domain.SoilTest{UserID: "hacker_try", Location: "Nashik"}

	soilRepo.On("Insert", mock.Anything, mock.AnythingOfType("*domain.SoilTest")).Return(nil).Run(func(args mock.Arguments) {
		st := args.Get(1).(*domain.SoilTest)
		assert.Equal(t, "user1", st.UserID)
	})

	assert.NoError(t, uc.SubmitSoilTest(ctx, test))
	soilRepo.AssertExpectations(t)
}

func TestSetLanguageValidation(t *testing.T) {
	repo := new(MockProfileRepo)
	uc := usecase.NewProfileUsecase(repo, new(MockSoilRepo), validator.New())
	ctx := context.WithValue(context.Background(), domain.KeyUserID, "user1")

	t.Run("rejects unsupported languages", func(t *testing.T) {
		err := uc.SetLanguage(ctx, "user1", domain.Language("fr"))
		assert.Error(t, err)
	})

	t.Run("rejects changing someone else's preference", func(t *testing.T) {
		err := uc.SetLanguage(ctx, "user2", domain.LanguageHindi)
		assert.Error(t, err)
	})

	t.Run("persists a valid change", func(t *testing.T) {
		repo.On("UpdateLanguage", mock.Anything, "user1", domain.LanguageHindi).Return(nil)
		assert.NoError(t, uc.SetLanguage(ctx, "user1", domain.LanguageHindi))
	})
}

func TestAdminGate(t *testing.T) {
	uc := usecase.NewAdminUsecase(new(MockAdminRepo), new(MockProfileRepo))

	t.Run("farmer cannot read stats", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), domain.KeyUserRole, "farmer")
		_, err := uc.GetStats(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Admin access required")
	})

	t.Run("missing role fails safe", func(t *testing.T) {
		_, err := uc.GetStats(context.Background())
		assert.Error(t, err)
	})

	t.Run("admin reads stats", func(t *testing.T) {
		adminRepo := new(MockAdminRepo)
		adminRepo.On("GetStats", mock.Anything).Return(&domain.PlatformStats{TotalProfiles: 7}, nil)
		uc := usecase.NewAdminUsecase(adminRepo, new(MockProfileRepo))

		ctx := context.WithValue(context.Background(), domain.KeyUserRole, "admin")
		stats, err := uc.GetStats(ctx)
		assert.NoError(t, err)
		assert.EqualValues(t, 7, stats.TotalProfiles)
	})

	t.Run("pagination clamps out-of-range values", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		profileRepo.On("List", mock.Anything, "", 1, 20).Return([]domain.Profile{}, int64(0), nil)
		uc := usecase.NewAdminUsecase(new(MockAdminRepo), profileRepo)

		ctx := context.WithValue(context.Background(), domain.KeyUserRole, "admin")
		result, err := uc.ListProfiles(ctx, "", -3, 5000)
		assert.NoError(t, err)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, 20, result.PageSize)
	})
}

func TestRecommendCrops(t *testing.T) {
	repo := new(MockAdvisoryRepo)
	repo.On("SaveRecommendation", mock.Anything, mock.Anything).Return(nil)
	uc := usecase.NewAdvisoryUsecase(repo)
	ctx := context.WithValue(context.Background(), domain.KeyUserID, "user1")

	t.Run("kharif serves the paddy table", func(t *testing.T) {
		crops, err := uc.RecommendCrops(ctx, "Nashik", "black", domain.SeasonKharif)
		assert.NoError(t, err)
		assert.Len(t, crops, 3)
		assert.Equal(t, "Rice", crops[0].Name)
		assert.Equal(t, 95, crops[0].Score)
		assert.NotEmpty(t, crops[0].NameHi)
	})

	t.Run("perennial has no table and returns empty", func(t *testing.T) {
		crops, err := uc.RecommendCrops(ctx, "Nashik", "black", domain.SeasonPerennial)
		assert.NoError(t, err)
		assert.Empty(t, crops)
	})

	t.Run("unknown season is rejected", func(t *testing.T) {
		_, err := uc.RecommendCrops(ctx, "Nashik", "black", domain.Season("monsoon"))
		assert.Error(t, err)
	})

	t.Run("region is required", func(t *testing.T) {
		_, err := uc.RecommendCrops(ctx, "", "black", domain.SeasonRabi)
		assert.Error(t, err)
	})
}

func TestPredictPrices(t *testing.T) {
	uc := usecase.NewAdvisoryUsecase(new(MockAdvisoryRepo))

	forecast, err := uc.PredictPrices(context.Background(), "Wheat", "Nashik Mandi")
	assert.NoError(t, err)
	assert.Equal(t, "Wheat", forecast.Crop)
	assert.Len(t, forecast.Points, 7)

	floor := 0.7 * forecast.CurrentPrice
	for i, p := range forecast.Points {
		assert.Equal(t, 95-3*i, p.Confidence)
		assert.GreaterOrEqual(t, p.Price, floor*0.99, "price must respect the floor")
	}

	_, err = uc.PredictPrices(context.Background(), "", "")
	assert.Error(t, err)
}

func TestWeatherSimulator(t *testing.T) {
	svc := usecase.NewWeatherService()

	t.Run("city is required", func(t *testing.T) {
		_, err := svc.Forecast(context.Background(), "")
		assert.Error(t, err)
	})

	t.Run("readings stay in plausible ranges", func(t *testing.T) {
		forecast, err := svc.Forecast(context.Background(), "Pune")
		assert.NoError(t, err)
		assert.Equal(t, "Pune", forecast.Current.City)
		assert.GreaterOrEqual(t, forecast.Current.Temperature, 28.0)
		assert.LessOrEqual(t, forecast.Current.Temperature, 38.0)
		assert.GreaterOrEqual(t, forecast.Current.Humidity, 60.0)
		assert.LessOrEqual(t, forecast.Current.Humidity, 90.0)
		assert.Len(t, forecast.Days, 5)
		for _, day := range forecast.Days {
			assert.NotEmpty(t, day.Date)
			assert.NotEmpty(t, day.Description)
		}
	})
}

func TestChatReplies(t *testing.T) {
	uc := usecase.NewChatUsecase()

	t.Run("matches keywords in english", func(t *testing.T) {
		reply, err := uc.Reply(context.Background(), "When should I sow wheat?", domain.LanguageEnglish)
		assert.NoError(t, err)
		assert.Contains(t, reply.Content, "Wheat")
		assert.Equal(t, "assistant", reply.Role)
		assert.NotEmpty(t, reply.ID)
	})

	t.Run("answers in hindi when preferred", func(t *testing.T) {
		reply, err := uc.Reply(context.Background(), "mandi rate?", domain.LanguageHindi)
		assert.NoError(t, err)
		assert.Contains(t, reply.Content, "मंडी")
	})

	t.Run("matches hindi keywords", func(t *testing.T) {
		reply, err := uc.Reply(context.Background(), "आज मौसम कैसा है", domain.LanguageHindi)
		assert.NoError(t, err)
		assert.Contains(t, reply.Content, "मौसम")
	})

	t.Run("falls back for unknown topics", func(t *testing.T) {
		reply, err := uc.Reply(context.Background(), "tell me a joke", domain.LanguageEnglish)
		assert.NoError(t, err)
		assert.Contains(t, reply.Content, "I can help")
	})

	t.Run("empty message is rejected", func(t *testing.T) {
		_, err := uc.Reply(context.Background(), "   ", domain.LanguageEnglish)
		assert.Error(t, err)
	})
}
