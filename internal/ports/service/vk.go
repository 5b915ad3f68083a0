package service

import "context"

// IVKService интерфейс для отправки сообщений пользователям VK
type IVKService interface {
	SendMessage(ctx context.Context, peerID int64, text string) error
	SendMessageWithKeyboard(ctx context.Context, peerID int64, text string, keyboard map[string]interface{}) error
	SendMessageWithAttachment(ctx context.Context, peerID int64, text string, attachment string) error
	// UploadDocument загружает файл как документ и возвращает attachment вида doc{owner}_{id}
	UploadDocument(ctx context.Context, peerID int64, filename string, data []byte) (string, error)
}
