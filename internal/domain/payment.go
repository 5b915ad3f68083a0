package domain

import "time"

// PaymentStatus статус платежа
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending" // создан, ожидает оплаты
	PaymentStatusPaid    PaymentStatus = "paid"    // оплачен, терминальный статус
	PaymentStatusExpired PaymentStatus = "expired" // протух, ставится только джобой-экспайрером
)

// Payment запись в леджере платежей.
// Единственный переход статуса - pending -> paid, выполняется условным UPDATE
// в репозитории (ClaimPaid). paid не откатывается никогда, в том числе при
// ошибке доставки курса.
type Payment struct {
	ID        int64         `json:"id" db:"id"`
	UserID    int64         `json:"user_id" db:"user_id"` // VK user id покупателя
	CourseID  int64         `json:"course_id" db:"course_id"`
	Label     string        `json:"label" db:"label"` // уникальная метка платежа: {user_id}:{course_id}:{token}
	Amount    int64         `json:"amount" db:"amount"`
	Status    PaymentStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	PaidAt    *time.Time    `json:"paid_at,omitempty" db:"paid_at"`
}

// FulfillmentOutcome результат обработки подтверждённого платежа
type FulfillmentOutcome string

const (
	OutcomeFulfilled        FulfillmentOutcome = "fulfilled"         // платёж проведён, курс доставлен
	OutcomeAlreadyProcessed FulfillmentOutcome = "already_processed" // повторное уведомление, no-op
	OutcomeUnknownLabel     FulfillmentOutcome = "unknown_label"     // метка не выдавалась, игнорируем
	OutcomeDeliveryFailed   FulfillmentOutcome = "delivery_failed"   // статус paid, но доставка не прошла
)
