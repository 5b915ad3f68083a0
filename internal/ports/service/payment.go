package service

import (
	"context"

	"github.com/MurderPatro1/vk-course-bot/internal/domain"
)

// IPaymentService интерфейс платёжного use case (для шоп-логики и контроллеров)
type IPaymentService interface {
	// CreatePayment создаёт pending-запись в леджере и возвращает её вместе
	// с платёжной ссылкой для покупателя
	CreatePayment(ctx context.Context, userID, courseID int64) (*domain.Payment, string, error)
	// HandleConfirmedPayment обрабатывает проверенное уведомление об оплате
	HandleConfirmedPayment(ctx context.Context, label string) (domain.FulfillmentOutcome, error)
	// Redeliver повторно доставляет курс по уже оплаченному платежу (ручной ресенд)
	Redeliver(ctx context.Context, label string) error
}
