package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/apperror"

	"github.com/google/uuid"
)

type chatReply struct {
	keywords []string
	en       string
	hi       string
}

// chatReplies is matched in order; first keyword hit wins.
var chatReplies = []chatReply{
	{
		keywords: []string{"wheat", "गेहूं"},
		en:       "Wheat grows best in cool weather. Sow between November and December, irrigate at crown root initiation, and watch for yellow rust.",
		hi:       "गेहूं ठंडे मौसम में सबसे अच्छा होता है। नवंबर-दिसंबर में बुवाई करें, ताज जड़ अवस्था पर सिंचाई करें और पीले रतुए पर नजर रखें।",
	},
	{
		keywords: []string{"rice", "paddy", "चावल", "धान"},
		en:       "Rice needs standing water during early growth. Transplant 25-day seedlings and keep 2-5cm of water until flowering.",
		hi:       "धान को शुरुआती वृद्धि में खड़े पानी की जरूरत होती है। 25 दिन की पौध रोपें और फूल आने तक 2-5 सेमी पानी रखें।",
	},
	{
		keywords: []string{"price", "rate", "mandi", "भाव", "मंडी"},
		en:       "You can check live mandi prices in the Mandi Prices section. Prices update daily for your selected crop and city.",
		hi:       "आप मंडी भाव अनुभाग में ताजा भाव देख सकते हैं। चुनी गई फसल और शहर के भाव रोज अपडेट होते हैं।",
	},
	{
		keywords: []string{"weather", "rain", "मौसम", "बारिश"},
		en:       "Open the Weather section for a 5-day forecast of your area. Plan spraying on dry, low-wind days.",
		hi:       "अपने क्षेत्र के 5 दिन के पूर्वानुमान के लिए मौसम अनुभाग खोलें। छिड़काव सूखे और कम हवा वाले दिन करें।",
	},
	{
		keywords: []string{"fertilizer", "urea", "खाद", "उर्वरक"},
		en:       "Apply fertilizer based on a soil test. Split nitrogen into 2-3 doses and avoid application right before heavy rain.",
		hi:       "मिट्टी जांच के आधार पर खाद डालें। नाइट्रोजन को 2-3 बार में बांटें और भारी बारिश से ठीक पहले न डालें।",
	},
}

const (
	chatFallbackEn = "I can help with crops, mandi prices, weather, and fertilizers. Could you tell me more about your question?"
	chatFallbackHi = "मैं फसलों, मंडी भाव, मौसम और खाद में मदद कर सकता हूं। कृपया अपना प्रश्न थोड़ा और बताएं।"
)

type chatUsecase struct{}

func NewChatUsecase() domain.ChatUsecase {
	return &chatUsecase{}
}

func (u *chatUsecase) Reply(ctx context.Context, message string, lang domain.Language) (*domain.ChatMessage, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return nil, apperror.BadRequest("Message is required")
	}

	lower := strings.ToLower(trimmed)
	content := chatFallbackEn
	if lang == domain.LanguageHindi {
		content = chatFallbackHi
	}
matching:
	for _, r := range chatReplies {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				content = r.en
				if lang == domain.LanguageHindi {
					content = r.hi
				}
				break matching
			}
		}
	}

	return &domain.ChatMessage{
		ID:        uuid.NewString(),
		Role:      "assistant",
		Content:   content,
		Timestamp: time.Now(),
	}, nil
}
