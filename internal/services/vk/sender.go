package vk

import (
	"context"
	"fmt"
)

// SendMessage отправляет текстовое сообщение пользователю
func (s *Service) SendMessage(ctx context.Context, peerID int64, text string) error {
	if err := s.Client.SendMessage(ctx, peerID, text); err != nil {
		s.Log.Error("failed to send message",
			"error", err,
			"peer_id", peerID,
		)
		return fmt.Errorf("failed to send message: %w", err)
	}

	s.Log.Debug("message sent successfully",
		"peer_id", peerID,
	)
	return nil
}

// SendMessageWithKeyboard отправляет сообщение с клавиатурой
func (s *Service) SendMessageWithKeyboard(ctx context.Context, peerID int64, text string, keyboard map[string]interface{}) error {
	if err := s.Client.SendMessageWithKeyboard(ctx, peerID, text, keyboard); err != nil {
		s.Log.Error("failed to send message with keyboard",
			"error", err,
			"peer_id", peerID,
		)
		return fmt.Errorf("failed to send message with keyboard: %w", err)
	}

	s.Log.Debug("message with keyboard sent successfully",
		"peer_id", peerID,
	)
	return nil
}

// SendMessageWithAttachment отправляет сообщение с вложением
func (s *Service) SendMessageWithAttachment(ctx context.Context, peerID int64, text string, attachment string) error {
	if err := s.Client.SendMessageWithAttachment(ctx, peerID, text, attachment); err != nil {
		s.Log.Error("failed to send message with attachment",
			"error", err,
			"peer_id", peerID,
			"attachment", attachment,
		)
		return fmt.Errorf("failed to send message with attachment: %w", err)
	}

	s.Log.Debug("message with attachment sent successfully",
		"peer_id", peerID,
		"attachment", attachment,
	)
	return nil
}

// UploadDocument загружает файл курса и возвращает attachment-строку
func (s *Service) UploadDocument(ctx context.Context, peerID int64, filename string, data []byte) (string, error) {
	attachment, err := s.Client.UploadDocument(ctx, peerID, filename, data)
	if err != nil {
		s.Log.Error("failed to upload document",
			"error", err,
			"peer_id", peerID,
			"filename", filename,
		)
		return "", fmt.Errorf("failed to upload document: %w", err)
	}

	s.Log.Debug("document uploaded successfully",
		"peer_id", peerID,
		"filename", filename,
		"attachment", attachment,
	)
	return attachment, nil
}
