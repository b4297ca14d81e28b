package domain

// SectionID identifies one of the dashboard screens.
type SectionID string

const (
	SectionDashboard          SectionID = "dashboard"
	SectionMandiPrices        SectionID = "mandiPrices"
	SectionWeather            SectionID = "weather"
	SectionCropRecommendation SectionID = "cropRecommendation"
	SectionPricePrediction    SectionID = "pricePrediction"
	SectionMandiLocator       SectionID = "mandiLocator"
	SectionAnalytics          SectionID = "analytics"
	SectionFarmerPortal       SectionID = "farmerPortal"
	SectionDiseaseDetection   SectionID = "diseaseDetection"
	SectionAdminPanel         SectionID = "adminPanel"
)

// Destination is one sidebar entry. The list is static and ordered; AdminOnly
// entries are hidden from non-admin profiles.
type Destination struct {
	ID        SectionID `json:"id"`
	AdminOnly bool      `json:"admin_only"`
}

var destinations = []Destination{
	{ID: SectionDashboard},
	{ID: SectionMandiPrices},
	{ID: SectionWeather},
	{ID: SectionCropRecommendation},
	{ID: SectionPricePrediction},
	{ID: SectionMandiLocator},
	{ID: SectionAnalytics},
	{ID: SectionFarmerPortal},
	{ID: SectionDiseaseDetection},
	{ID: SectionAdminPanel, AdminOnly: true},
}

// Destinations returns the full static list in declaration order.
func Destinations() []Destination {
	out := make([]Destination, len(destinations))
	copy(out, destinations)
	return out
}

// VisibleDestinations filters the static list for the given profile. Admin-only
// entries are kept only for admins; a nil profile sees the non-admin subset.
// Order is always declaration order.
func VisibleDestinations(p *Profile) []Destination {
	out := make([]Destination, 0, len(destinations))
	for _, d := range destinations {
		if d.AdminOnly && (p == nil || p.Role != RoleAdmin) {
			continue
		}
		out = append(out, d)
	}
	return out
}
