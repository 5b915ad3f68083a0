package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/MurderPatro1/vk-course-bot/internal/ports/repository"
)

const paymentExpirerName = "payment-expirer"

// PaymentExpirer джоба для протухания зависших pending-платежей, каждый день в 04:00 по Мск.
// Включается только если задан TTL: оплаченное после протухания уведомление
// от провайдера будет проигнорировано, поэтому TTL держим щедрым.
type PaymentExpirer struct {
	paymentRepo repository.IPaymentRepo
	ttl         time.Duration
	log         *slog.Logger
	location    *time.Location
}

func NewPaymentExpirer(
	paymentRepo repository.IPaymentRepo,
	ttl time.Duration,
	log *slog.Logger,
) *PaymentExpirer {
	location, _ := time.LoadLocation("Europe/Moscow")
	if location == nil {
		location = time.UTC
	}

	return &PaymentExpirer{
		paymentRepo: paymentRepo,
		ttl:         ttl,
		log:         log,
		location:    location,
	}
}

func (j *PaymentExpirer) Name() string {
	return paymentExpirerName
}

// NextRun каждый день в 04:00 по Мск
func (j *PaymentExpirer) NextRun(now time.Time) time.Time {
	nowMoscow := now.In(j.location)
	next := time.Date(nowMoscow.Year(), nowMoscow.Month(), nowMoscow.Day(), 4, 0, 0, 0, j.location)
	if next.Before(nowMoscow) || next.Equal(nowMoscow) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// Run помечает pending-платежи старше TTL как expired
func (j *PaymentExpirer) Run(ctx context.Context) error {
	olderThan := time.Now().Add(-j.ttl)

	count, err := j.paymentRepo.ExpirePending(ctx, olderThan)
	if err != nil {
		return err
	}

	j.log.Info("payment expirer finished",
		"expired_count", count,
		"older_than", olderThan,
	)
	return nil
}
