package vk

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MurderPatro1/vk-course-bot/internal/domain"
)

// HandleEvent Основной метод для обработки всех типов событий Callback API
func (s *Service) HandleEvent(ctx context.Context, event *domain.CallbackEvent) error {
	if event == nil {
		return fmt.Errorf("event is nil")
	}

	if event.Type == domain.CallbackTypeMessageNew {
		return s.HandleMessageNew(ctx, event)
	}

	s.Log.Debug("ignoring unsupported event type",
		"type", event.Type,
		"event_id", event.EventID,
	)
	return nil
}

// HandleMessageNew обрабатывает входящее сообщение - роутинг в usecase
func (s *Service) HandleMessageNew(ctx context.Context, event *domain.CallbackEvent) error {
	message, err := ParseMessage(event.Object)
	if err != nil {
		return fmt.Errorf("failed to parse message_new object: %w", err)
	}

	userID := message.Sender()
	if userID <= 0 {
		// Сообщения от сообществ и системные события не обрабатываем
		s.Log.Debug("ignoring message without user sender",
			"event_id", event.EventID,
			"from_id", message.FromID,
		)
		return nil
	}

	if s.BotService == nil {
		return fmt.Errorf("bot service is not initialized")
	}

	peerID := message.Peer()

	if payload := ParsePayload(message.Payload); payload != nil {
		return s.BotService.HandleCommand(ctx, peerID, userID, payload)
	}

	return s.BotService.HandleText(ctx, peerID, userID, strings.TrimSpace(message.Text))
}

// ParseMessage достаёт сообщение из object события message_new.
// VK присылает либо {"message": {...}}, либо сообщение плоско (старые версии API)
func ParseMessage(object json.RawMessage) (*domain.VKMessage, error) {
	if len(object) == 0 {
		return nil, fmt.Errorf("object is empty")
	}

	var obj domain.MessageNewObject
	if err := json.Unmarshal(object, &obj); err != nil {
		return nil, fmt.Errorf("failed to unmarshal object: %w", err)
	}

	if obj.Message != nil {
		return obj.Message, nil
	}
	return &obj.VKMessage, nil
}

// ParsePayload разбирает payload кнопки.
// VK передаёт payload строкой с JSON внутри ("{\"cmd\":\"buy\"}"),
// но на всякий случай принимаем и незаэкранированный объект
func ParsePayload(raw json.RawMessage) *domain.ButtonPayload {
	if len(raw) == 0 {
		return nil
	}

	data := []byte(raw)
	var inner string
	if err := json.Unmarshal(data, &inner); err == nil {
		data = []byte(inner)
	}

	var payload domain.ButtonPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}
	if payload.Cmd == "" {
		return nil
	}
	return &payload
}
