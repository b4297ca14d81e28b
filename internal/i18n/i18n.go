// Package i18n is the static en/hi message table. Lookups that miss return
// the key itself, which doubles as a visible marker for missing translations.
package i18n

import (
	"context"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/session"
)

type entry struct {
	en string
	hi string
}

var translations = map[string]entry{
	"appName":            {"Krishi Saathi", "कृषि साथी"},
	"welcome":            {"Welcome", "स्वागत है"},
	"login":              {"Login", "लॉगिन"},
	"signup":             {"Sign Up", "साइन अप"},
	"logout":             {"Logout", "लॉगआउट"},
	"email":              {"Email", "ईमेल"},
	"password":           {"Password", "पासवर्ड"},
	"fullName":           {"Full Name", "पूरा नाम"},
	"role":               {"Role", "भूमिका"},
	"farmer":             {"Farmer", "किसान"},
	"admin":              {"Admin", "व्यवस्थापक"},
	"dashboard":          {"Dashboard", "डैशबोर्ड"},
	"mandiPrices":        {"Mandi Prices", "मंडी मूल्य"},
	"weather":            {"Weather", "मौसम"},
	"chatbot":            {"AI Assistant", "एआई सहायक"},
	"cropRecommendation": {"Crop Recommendation", "फसल सिफारिश"},
	"pricePrediction":    {"Price Prediction", "मूल्य भविष्यवाणी"},
	"mandiLocator":       {"Mandi Locator", "मंडी लोकेटर"},
	"analytics":          {"Analytics", "विश्लेषण"},
	"farmerPortal":       {"Farmer Portal", "किसान पोर्टल"},
	"diseaseDetection":   {"Disease Detection", "रोग पहचान"},
	"adminPanel":         {"Admin Panel", "व्यवस्थापक पैनल"},
	"searchCrop":         {"Search Crop", "फसल खोजें"},
	"searchCity":         {"Search City", "शहर खोजें"},
	"search":             {"Search", "खोजें"},
	"modalPrice":         {"Modal Price", "औसत मूल्य"},
	"minPrice":           {"Min Price", "न्यूनतम मूल्य"},
	"maxPrice":           {"Max Price", "अधिकतम मूल्य"},
	"arrivals":           {"Arrivals", "आगमन"},
	"tonnes":             {"Tonnes", "टन"},
	"temperature":        {"Temperature", "तापमान"},
	"humidity":           {"Humidity", "आर्द्रता"},
	"rainfall":           {"Rainfall", "वर्षा"},
	"windSpeed":          {"Wind Speed", "हवा की गति"},
	"forecast":           {"Forecast", "पूर्वानुमान"},
	"days":               {"Days", "दिन"},
	"uploadImage":        {"Upload Image", "छवि अपलोड करें"},
	"submit":             {"Submit", "जमा करें"},
	"cancel":             {"Cancel", "रद्द करें"},
	"save":               {"Save", "सहेजें"},
	"edit":               {"Edit", "संपादित करें"},
	"delete":             {"Delete", "हटाएं"},
	"close":              {"Close", "बंद करें"},
	"loading":            {"Loading...", "लोड हो रहा है..."},
	"noData":             {"No data available", "कोई डेटा उपलब्ध नहीं"},
	"error":              {"Error", "त्रुटि"},
	"success":            {"Success", "सफलता"},
	"soilType":           {"Soil Type", "मिट्टी का प्रकार"},
	"season":             {"Season", "मौसम"},
	"region":             {"Region", "क्षेत्र"},
	"recommended":        {"Recommended Crops", "अनुशंसित फसलें"},
	"profile":            {"Profile", "प्रोफाइल"},
	"location":           {"Location", "स्थान"},
	"phone":              {"Phone", "फोन"},
	"language":           {"Language", "भाषा"},
	"english":            {"English", "अंग्रेज़ी"},
	"hindi":              {"Hindi", "हिंदी"},
}

// Lookup translates key for lang, falling back to the key verbatim.
func Lookup(key string, lang domain.Language) string {
	e, ok := translations[key]
	if !ok {
		return key
	}
	if lang == domain.LanguageHindi {
		return e.hi
	}
	return e.en
}

// LocaleFor derives the active locale from a session snapshot. It is computed
// on read, never cached: the profile is the only source of truth.
func LocaleFor(s domain.Session) domain.Language {
	if s.State == domain.SessionAuthenticated && s.Profile != nil && s.Profile.PreferredLanguage != "" {
		return s.Profile.PreferredLanguage
	}
	return domain.LanguageEnglish
}

// Translator binds the table to a session store. Its locale is always derived
// from the store; SetLanguage flows through the store's optimistic update.
type Translator struct {
	store *session.Store
}

func NewTranslator(store *session.Store) *Translator {
	return &Translator{store: store}
}

func (t *Translator) Locale() domain.Language {
	return LocaleFor(t.store.Current())
}

func (t *Translator) T(key string) string {
	return Lookup(key, t.Locale())
}

func (t *Translator) SetLanguage(ctx context.Context, lang domain.Language) (<-chan error, error) {
	return t.store.SetPreferredLanguage(ctx, lang)
}
