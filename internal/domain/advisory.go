package domain

import "context"

type RecommendedCrop struct {
	Name     string `json:"name"`
	NameHi   string `json:"name_hi"`
	Score    int    `json:"score"`
	Reason   string `json:"reason"`
	ReasonHi string `json:"reason_hi"`
}

type PricePoint struct {
	Date       string  `json:"date"`
	Price      float64 `json:"price"`
	Confidence int     `json:"confidence"`
}

type PriceForecast struct {
	Crop         string       `json:"crop"`
	Mandi        string       `json:"mandi"`
	CurrentPrice float64      `json:"current_price"`
	Points       []PricePoint `json:"predictions"`
}

type DiseaseSeverity string

const (
	SeverityLow    DiseaseSeverity = "low"
	SeverityMedium DiseaseSeverity = "medium"
	SeverityHigh   DiseaseSeverity = "high"
)

type DiseaseResult struct {
	Disease     string          `json:"disease"`
	DiseaseHi   string          `json:"disease_hi"`
	Confidence  int             `json:"confidence"`
	Treatment   string          `json:"treatment"`
	TreatmentHi string          `json:"treatment_hi"`
	Severity    DiseaseSeverity `json:"severity"`
}

// CropRecommendationRecord is the stored trace of one recommendation request.
type CropRecommendationRecord struct {
	UserID   string
	Region   string
	SoilType string
	Season   Season
	Crops    []RecommendedCrop
}

type AdvisoryRepository interface {
	SaveRecommendation(ctx context.Context, rec *CropRecommendationRecord) error
}

// AdvisoryUsecase bundles the advisory features. All three are simulator
// stubs today; the interface is the seam for real models later.
type AdvisoryUsecase interface {
	RecommendCrops(ctx context.Context, region, soilType string, season Season) ([]RecommendedCrop, error)
	PredictPrices(ctx context.Context, crop, mandi string) (*PriceForecast, error)
	DetectDisease(ctx context.Context, image []byte) (*DiseaseResult, error)
}
