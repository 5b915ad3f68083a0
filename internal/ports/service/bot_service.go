package service

import (
	"context"

	"github.com/MurderPatro1/vk-course-bot/internal/domain"
)

// IBotService бизнес-логика бота: обработка команд и текста покупателя
type IBotService interface {
	HandleCommand(ctx context.Context, peerID, userID int64, payload *domain.ButtonPayload) error
	HandleText(ctx context.Context, peerID, userID int64, text string) error
}
