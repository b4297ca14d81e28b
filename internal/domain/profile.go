package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleFarmer Role = "farmer"
	RoleAdmin  Role = "admin"
)

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
)

// Profile is the application-level user record, keyed by the Supabase auth
// user id. The row is created by a database trigger right after sign-up, so
// it may lag the identity by a moment.
type Profile struct {
	ID                string    `json:"id"` // Supabase UUID
	FullName          string    `json:"full_name"`
	Phone             *string   `json:"phone,omitempty"`
	Role              Role      `json:"role"`
	Location          *string   `json:"location,omitempty"`
	PreferredLanguage Language  `json:"preferred_language"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProfileUpdate carries the fields a user may change about themselves.
type ProfileUpdate struct {
	FullName string  `json:"full_name" binding:"omitempty,valid_name,max=120"`
	Phone    *string `json:"phone" binding:"omitempty,valid_phone"`
	Location *string `json:"location" binding:"omitempty,max=120"`
}

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*Profile, error)
	Create(ctx context.Context, profile *Profile) error
	Update(ctx context.Context, profile *Profile) error
	UpdateLanguage(ctx context.Context, id string, lang Language) error
	List(ctx context.Context, role string, page, pageSize int) ([]Profile, int64, error)
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, id string) (*Profile, error)
	UpdateProfile(ctx context.Context, id string, patch ProfileUpdate) (*Profile, error)
	SetLanguage(ctx context.Context, id string, lang Language) error
	SubmitSoilTest(ctx context.Context, test *SoilTest) error
	RecentSoilTests(ctx context.Context, userID string, limit int) ([]SoilTest, error)
}
