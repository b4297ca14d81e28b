package usecase

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math/rand"
	"time"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/apperror"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/logger"

	"golang.org/x/image/draw"
)

const maxDiseaseImageBytes = 5 * 1024 * 1024

// seasonCrops is the static recommendation table the simulator serves per
// season. Scores are fixed; the reason strings reference the caller's region.
var seasonCrops = map[domain.Season][]domain.RecommendedCrop{
	domain.SeasonKharif: {
		{Name: "Rice", NameHi: "चावल", Score: 95, Reason: "High rainfall suits paddy cultivation", ReasonHi: "अधिक वर्षा धान की खेती के लिए उपयुक्त है"},
		{Name: "Cotton", NameHi: "कपास", Score: 88, Reason: "Warm climate and black soil favour cotton", ReasonHi: "गर्म जलवायु और काली मिट्टी कपास के लिए अनुकूल है"},
		{Name: "Maize", NameHi: "मक्का", Score: 82, Reason: "Versatile crop with good monsoon yields", ReasonHi: "मानसून में अच्छी उपज देने वाली बहुमुखी फसल"},
	},
	domain.SeasonRabi: {
		{Name: "Wheat", NameHi: "गेहूं", Score: 93, Reason: "Cool winters are ideal for wheat", ReasonHi: "ठंडी सर्दियां गेहूं के लिए आदर्श हैं"},
		{Name: "Chickpea", NameHi: "चना", Score: 87, Reason: "Low water need and improves soil nitrogen", ReasonHi: "कम पानी की आवश्यकता और मिट्टी में नाइट्रोजन बढ़ाता है"},
		{Name: "Mustard", NameHi: "सरसों", Score: 80, Reason: "Thrives in dry winter conditions", ReasonHi: "शुष्क सर्दियों की परिस्थितियों में अच्छी बढ़त"},
	},
	domain.SeasonZaid: {
		{Name: "Watermelon", NameHi: "तरबूज", Score: 90, Reason: "Summer heat boosts fruit sweetness", ReasonHi: "गर्मी फल की मिठास बढ़ाती है"},
		{Name: "Cucumber", NameHi: "खीरा", Score: 85, Reason: "Quick-growing summer vegetable", ReasonHi: "तेजी से बढ़ने वाली गर्मी की सब्जी"},
		{Name: "Muskmelon", NameHi: "खरबूजा", Score: 78, Reason: "Does well on sandy riverbank soil", ReasonHi: "नदी किनारे की रेतीली मिट्टी में अच्छा होता है"},
	},
}

// staticDiseases is the rotation the detector picks from until a real model
// is plugged in.
var staticDiseases = []domain.DiseaseResult{
	{
		Disease: "Leaf Blight", DiseaseHi: "पत्ती झुलसा",
		Treatment:   "Apply copper-based fungicide and remove affected leaves",
		TreatmentHi: "तांबा आधारित कवकनाशी का छिड़काव करें और प्रभावित पत्तियां हटाएं",
		Severity:    domain.SeverityMedium,
	},
	{
		Disease: "Powdery Mildew", DiseaseHi: "चूर्णिल आसिता",
		Treatment:   "Spray sulfur solution in the early morning",
		TreatmentHi: "सुबह जल्दी सल्फर घोल का छिड़काव करें",
		Severity:    domain.SeverityLow,
	},
	{
		Disease: "Bacterial Wilt", DiseaseHi: "जीवाणु म्लानि",
		Treatment:   "Remove infected plants and rotate crops next season",
		TreatmentHi: "संक्रमित पौधों को हटाएं और अगले मौसम में फसल चक्र अपनाएं",
		Severity:    domain.SeverityHigh,
	},
}

type advisoryUsecase struct {
	repo domain.AdvisoryRepository
	rng  *rand.Rand
}

func NewAdvisoryUsecase(repo domain.AdvisoryRepository) domain.AdvisoryUsecase {
	return &advisoryUsecase{repo: repo, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (u *advisoryUsecase) RecommendCrops(ctx context.Context, region, soilType string, season domain.Season) ([]domain.RecommendedCrop, error) {
	if region == "" {
		return nil, apperror.BadRequest("Region is required")
	}
	switch season {
	case domain.SeasonKharif, domain.SeasonRabi, domain.SeasonZaid, domain.SeasonPerennial:
	default:
		return nil, apperror.BadRequest("Unknown season")
	}

	crops := seasonCrops[season]
	out := make([]domain.RecommendedCrop, len(crops))
	copy(out, crops)

	if userID, ok := ctx.Value(domain.KeyUserID).(string); ok && userID != "" {
		rec := &domain.CropRecommendationRecord{
			UserID:   userID,
			Region:   region,
			SoilType: soilType,
			Season:   season,
			Crops:    out,
		}
		if err := u.repo.SaveRecommendation(ctx, rec); err != nil {
			// Persistence is a trace, not the product; the answer still ships.
			logger.Log.Warn("failed to save crop recommendation", "user_id", userID, "error", err)
		}
	}
	return out, nil
}

// PredictPrices runs a bounded random walk from a synthetic base price.
// Confidence decays with horizon and never drops below 70% of the start.
func (u *advisoryUsecase) PredictPrices(ctx context.Context, crop, mandi string) (*domain.PriceForecast, error) {
	if crop == "" {
		return nil, apperror.BadRequest("Crop is required")
	}

	base := 2000 + u.rng.Float64()*3000
	price := base
	points := make([]domain.PricePoint, 0, 7)
	for i := 0; i < 7; i++ {
		price = price * (1 + (u.rng.Float64()-0.5)*0.04)
		floor := 0.7 * base
		if price < floor {
			price = floor
		}
		points = append(points, domain.PricePoint{
			Date:       time.Now().AddDate(0, 0, i+1).Format("2006-01-02"),
			Price:      round1(price),
			Confidence: 95 - 3*i,
		})
	}

	return &domain.PriceForecast{
		Crop:         crop,
		Mandi:        mandi,
		CurrentPrice: round1(base),
		Points:       points,
	}, nil
}

// DetectDisease validates and downscales the upload, then serves one of the
// static results. The downscale keeps memory bounded for oversized photos and
// is where a real classifier would take its input from.
func (u *advisoryUsecase) DetectDisease(ctx context.Context, imageData []byte) (*domain.DiseaseResult, error) {
	if len(imageData) == 0 {
		return nil, apperror.BadRequest("Image is required")
	}
	if len(imageData) > maxDiseaseImageBytes {
		return nil, apperror.BadRequest("Image exceeds the 5MB limit")
	}

	src, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, apperror.BadRequest(fmt.Sprintf("Unsupported image: %v", err))
	}

	bounds := src.Bounds()
	if bounds.Dx() > 512 || bounds.Dy() > 512 {
		scaled := image.NewRGBA(image.Rect(0, 0, 512, 512*bounds.Dy()/bounds.Dx()))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, bounds, draw.Over, nil)
	}

	result := staticDiseases[u.rng.Intn(len(staticDiseases))]
	result.Confidence = 75 + u.rng.Intn(21)
	logger.Log.Debug("disease detection served", "format", format, "disease", result.Disease)
	return &result, nil
}
