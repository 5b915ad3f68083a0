package repository

import (
	"context"
	"time"

	"github.com/MurderPatro1/vk-course-bot/internal/domain"
)

// IPaymentRepo интерфейс для работы с леджером платежей
type IPaymentRepo interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByLabel(ctx context.Context, label string) (*domain.Payment, error)
	// ClaimPaid атомарно переводит платёж pending -> paid.
	// Возвращает true ровно одному вызывающему; повторные и конкурентные
	// вызовы для той же метки получают false.
	ClaimPaid(ctx context.Context, label string) (bool, error)
	// ExpirePending помечает pending-платежи старше olderThan как expired,
	// возвращает количество затронутых записей. Используется только джобой.
	ExpirePending(ctx context.Context, olderThan time.Time) (int64, error)
}
