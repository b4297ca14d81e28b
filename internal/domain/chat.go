package domain

import (
	"context"
	"time"
)

type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // user | assistant
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatUsecase interface {
	Reply(ctx context.Context, message string, lang Language) (*ChatMessage, error)
}
