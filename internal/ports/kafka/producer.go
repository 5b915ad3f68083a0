package kafka

import "context"

// IEventProducer интерфейс для публикации событий платёжного цикла
type IEventProducer interface {
	Send(ctx context.Context, key string, value []byte) error
	SendPaymentEvent(ctx context.Context, event string, label string, payload map[string]interface{}) error
	Close() error
}
