package i18n_test

import (
	"context"
	"testing"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/i18n"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/session"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	t.Run("translates known keys per language", func(t *testing.T) {
		assert.Equal(t, "Krishi Saathi", i18n.Lookup("appName", domain.LanguageEnglish))
		assert.Equal(t, "कृषि साथी", i18n.Lookup("appName", domain.LanguageHindi))
		assert.Equal(t, "Mandi Prices", i18n.Lookup("mandiPrices", domain.LanguageEnglish))
		assert.Equal(t, "मंडी मूल्य", i18n.Lookup("mandiPrices", domain.LanguageHindi))
	})

	t.Run("missing key falls back to the key itself, both languages", func(t *testing.T) {
		assert.Equal(t, "noSuchKey", i18n.Lookup("noSuchKey", domain.LanguageEnglish))
		assert.Equal(t, "noSuchKey", i18n.Lookup("noSuchKey", domain.LanguageHindi))
	})

	t.Run("unknown language falls back to english", func(t *testing.T) {
		assert.Equal(t, "Weather", i18n.Lookup("weather", domain.Language("fr")))
	})
}

func TestLocaleFor(t *testing.T) {
	hindiProfile := &domain.Profile{ID: "u1", PreferredLanguage: domain.LanguageHindi}

	t.Run("unauthenticated sessions read english", func(t *testing.T) {
		assert.Equal(t, domain.LanguageEnglish, i18n.LocaleFor(domain.Session{State: domain.SessionUnauthenticated}))
		assert.Equal(t, domain.LanguageEnglish, i18n.LocaleFor(domain.Session{State: domain.SessionLoading}))
	})

	t.Run("authenticated sessions read the profile preference", func(t *testing.T) {
		sess := domain.Session{State: domain.SessionAuthenticated, Profile: hindiProfile}
		assert.Equal(t, domain.LanguageHindi, i18n.LocaleFor(sess))
	})

	t.Run("locale is derived, never cached", func(t *testing.T) {
		profile := &domain.Profile{ID: "u1", PreferredLanguage: domain.LanguageHindi}
		sess := domain.Session{State: domain.SessionAuthenticated, Profile: profile}
		assert.Equal(t, domain.LanguageHindi, i18n.LocaleFor(sess))

		// The same snapshot after sign-out derives english again.
		sess = domain.Session{State: domain.SessionUnauthenticated, Profile: nil}
		assert.Equal(t, domain.LanguageEnglish, i18n.LocaleFor(sess))
	})

	t.Run("authenticated profile without a preference reads english", func(t *testing.T) {
		sess := domain.Session{State: domain.SessionAuthenticated, Profile: &domain.Profile{ID: "u2"}}
		assert.Equal(t, domain.LanguageEnglish, i18n.LocaleFor(sess))
	})
}

// Stub backend for wiring a real store behind the translator.
type stubGateway struct{}

func (stubGateway) SignInWithPassword(ctx context.Context, email, password string) (*domain.AuthGrant, error) {
	return &domain.AuthGrant{Identity: domain.Identity{ID: "u1", Email: email}, AccessToken: "tok"}, nil
}

func (stubGateway) SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*domain.AuthGrant, error) {
	return &domain.AuthGrant{Identity: domain.Identity{ID: "u1", Email: email}, AccessToken: "tok"}, nil
}

func (stubGateway) SignOut(ctx context.Context, accessToken string) error { return nil }

func (stubGateway) GetUser(ctx context.Context, accessToken string) (*domain.Identity, error) {
	return &domain.Identity{ID: "u1"}, nil
}

type stubProfiles struct {
	profile *domain.Profile
}

func (s *stubProfiles) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	return s.profile, nil
}
func (s *stubProfiles) Create(ctx context.Context, p *domain.Profile) error { return nil }
func (s *stubProfiles) Update(ctx context.Context, p *domain.Profile) error { return nil }
func (s *stubProfiles) UpdateLanguage(ctx context.Context, id string, lang domain.Language) error {
	return nil
}
func (s *stubProfiles) List(ctx context.Context, role string, page, pageSize int) ([]domain.Profile, int64, error) {
	return nil, 0, nil
}

func TestTranslatorFollowsTheSession(t *testing.T) {
	logger.Init()
	profiles := &stubProfiles{profile: &domain.Profile{ID: "u1", PreferredLanguage: domain.LanguageEnglish}}
	store := session.NewStore(stubGateway{}, profiles, logger.Log)
	tr := i18n.NewTranslator(store)

	// Before sign-in the translator reads english.
	assert.Equal(t, domain.LanguageEnglish, tr.Locale())
	assert.Equal(t, "Weather", tr.T("weather"))

	_, err := store.SignIn(context.Background(), "ram@x.in", "pw")
	assert.NoError(t, err)
	assert.Equal(t, domain.LanguageEnglish, tr.Locale())

	// Language change applies to lookups immediately.
	result, err := tr.SetLanguage(context.Background(), domain.LanguageHindi)
	assert.NoError(t, err)
	assert.Equal(t, domain.LanguageHindi, tr.Locale())
	assert.Equal(t, "मौसम", tr.T("weather"))
	assert.NoError(t, <-result)

	// Sign-out drops back to the english default.
	store.SignOut(context.Background())
	assert.Equal(t, domain.LanguageEnglish, tr.Locale())
}
