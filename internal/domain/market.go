package domain

import (
	"context"
	"time"
)

type CropCategory string

const (
	CropCereal    CropCategory = "cereal"
	CropPulse     CropCategory = "pulse"
	CropVegetable CropCategory = "vegetable"
	CropFruit     CropCategory = "fruit"
	CropCashCrop  CropCategory = "cash_crop"
	CropSpice     CropCategory = "spice"
)

type Season string

const (
	SeasonKharif    Season = "kharif"
	SeasonRabi      Season = "rabi"
	SeasonZaid      Season = "zaid"
	SeasonPerennial Season = "perennial"
)

type Crop struct {
	ID               string       `json:"id"`
	NameEn           string       `json:"name_en"`
	NameHi           string       `json:"name_hi"`
	Category         CropCategory `json:"category"`
	Season           Season       `json:"season"`
	SoilType         []string     `json:"soil_type"`
	WaterRequirement string       `json:"water_requirement"` // low | medium | high
	DurationDays     int          `json:"duration_days"`
	CreatedAt        time.Time    `json:"created_at"`
}

type Mandi struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	Contact   *string   `json:"contact,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type MandiPrice struct {
	ID             string    `json:"id"`
	MandiID        string    `json:"mandi_id"`
	CropID         string    `json:"crop_id"`
	Date           time.Time `json:"date"`
	ModalPrice     float64   `json:"modal_price"`
	MinPrice       float64   `json:"min_price"`
	MaxPrice       float64   `json:"max_price"`
	ArrivalsTonnes float64   `json:"arrivals_tonnes"`
	CreatedAt      time.Time `json:"created_at"`
	Mandi          *Mandi    `json:"mandi,omitempty"`
	Crop           *Crop     `json:"crop,omitempty"`
}

// PriceQuery filters the price search; both fields are optional but at least
// one must be set.
type PriceQuery struct {
	CropID string
	City   string
	Limit  int
}

type MarketRepository interface {
	ListCrops(ctx context.Context) ([]Crop, error)
	ListMandis(ctx context.Context) ([]Mandi, error)
	SearchPrices(ctx context.Context, q PriceQuery) ([]MandiPrice, error)
}

type MarketUsecase interface {
	ListCrops(ctx context.Context) ([]Crop, error)
	ListMandis(ctx context.Context) ([]Mandi, error)
	SearchPrices(ctx context.Context, q PriceQuery) ([]MandiPrice, error)
}
