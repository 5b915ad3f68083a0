package vk

import (
	"log/slog"

	VKClient "github.com/MurderPatro1/vk-course-bot/internal/adapters/secondary/vk"
	"github.com/MurderPatro1/vk-course-bot/internal/ports/service"
)

type Service struct {
	Client     *VKClient.Client
	BotService service.IBotService
	Log        *slog.Logger
}

func New(client *VKClient.Client, log *slog.Logger) *Service {
	return &Service{
		Client: client,
		Log:    log,
	}
}

// SetBotService устанавливает botService (для случаев когда нужно обновить после создания)
func (s *Service) SetBotService(botService service.IBotService) {
	s.BotService = botService
}
