package domain

import (
	"context"
	"time"
)

// SoilTest is a farmer-submitted soil report from the Farmer Portal.
type SoilTest struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Location      string    `json:"location"`
	PHLevel       *float64  `json:"ph_level,omitempty"`
	Nitrogen      *float64  `json:"nitrogen,omitempty"`
	Phosphorus    *float64  `json:"phosphorus,omitempty"`
	Potassium     *float64  `json:"potassium,omitempty"`
	OrganicCarbon *float64  `json:"organic_carbon,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type SoilTestRepository interface {
	Insert(ctx context.Context, test *SoilTest) error
	ListByUser(ctx context.Context, userID string, limit int) ([]SoilTest, error)
}
