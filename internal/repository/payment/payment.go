package paymentRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	ports "github.com/MurderPatro1/vk-course-bot/internal/ports/repository"

	"log/slog"

	"github.com/MurderPatro1/vk-course-bot/internal/domain"
	"github.com/MurderPatro1/vk-course-bot/internal/ports/persistence"
)

type paymentColumns struct {
	TableName string
	ID        string
	UserID    string
	CourseID  string
	Label     string
	Amount    string
	Status    string
	CreatedAt string
	PaidAt    string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns paymentColumns
}

// New создаёт новый репозиторий для работы с леджером платежей
func New(db persistence.Persistence, log *slog.Logger) ports.IPaymentRepo {
	cols := paymentColumns{
		TableName: "payments",
		ID:        "id",
		UserID:    "user_id",
		CourseID:  "course_id",
		Label:     "label",
		Amount:    "amount",
		Status:    "status",
		CreatedAt: "created_at",
		PaidAt:    "paid_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// allColumns возвращает строку со всеми колонками (8 полей)
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.UserID,
		r.columns.CourseID,
		r.columns.Label,
		r.columns.Amount,
		r.columns.Status,
		r.columns.CreatedAt,
		r.columns.PaidAt,
	)
}

// Create создаёт новый платёж в статусе pending, ID назначает БД
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6) RETURNING %s`,
		r.columns.TableName,
		r.columns.UserID,
		r.columns.CourseID,
		r.columns.Label,
		r.columns.Amount,
		r.columns.Status,
		r.columns.CreatedAt,
		r.columns.ID,
	)

	row := r.db.QueryRow(ctx, query,
		payment.UserID,
		payment.CourseID,
		payment.Label,
		payment.Amount,
		string(payment.Status),
		payment.CreatedAt,
	)
	if err := row.Scan(&payment.ID); err != nil {
		r.Log.Error("failed to create payment",
			"error", err,
			"user_id", payment.UserID,
			"course_id", payment.CourseID,
			"label", payment.Label,
		)
		return fmt.Errorf("failed to create payment: %w", err)
	}

	r.Log.Debug("payment created successfully",
		"payment_id", payment.ID,
		"user_id", payment.UserID,
		"label", payment.Label,
		"amount", payment.Amount,
	)
	return nil
}

// GetByLabel получает платёж по уникальной метке
func (r *Repository) GetByLabel(ctx context.Context, label string) (*domain.Payment, error) {
	var payment domain.Payment

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.Label,
	)

	err := r.db.Get(ctx, &payment, query, label)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Warn("payment not found by label", "label", label)
			return nil, domain.ErrPaymentNotFound
		}
		r.Log.Error("failed to get payment by label",
			"error", err,
			"label", label,
		)
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	r.Log.Debug("payment retrieved successfully by label", "label", label)
	return &payment, nil
}

// ClaimPaid атомарно переводит платёж pending -> paid.
// Условный UPDATE по статусу гарантирует, что переход пройдёт ровно один раз:
// конкурентные вызовы для той же метки получат affected = 0.
func (r *Repository) ClaimPaid(ctx context.Context, label string) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2 AND %s = $3`,
		r.columns.TableName,
		r.columns.Status,
		r.columns.PaidAt,
		r.columns.Label,
		r.columns.Status,
	)

	affected, err := r.db.ExecWithResult(ctx, query,
		string(domain.PaymentStatusPaid),
		label,
		string(domain.PaymentStatusPending),
	)
	if err != nil {
		r.Log.Error("failed to claim payment",
			"error", err,
			"label", label,
		)
		return false, fmt.Errorf("failed to claim payment: %w", err)
	}

	claimed := affected > 0
	r.Log.Debug("payment claim attempted",
		"label", label,
		"claimed", claimed,
	)
	return claimed, nil
}

// ExpirePending помечает pending-платежи старше olderThan как expired
func (r *Repository) ExpirePending(ctx context.Context, olderThan time.Time) (int64, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2 AND %s < $3`,
		r.columns.TableName,
		r.columns.Status,
		r.columns.Status,
		r.columns.CreatedAt,
	)

	affected, err := r.db.ExecWithResult(ctx, query,
		string(domain.PaymentStatusExpired),
		string(domain.PaymentStatusPending),
		olderThan,
	)
	if err != nil {
		r.Log.Error("failed to expire pending payments",
			"error", err,
			"older_than", olderThan,
		)
		return 0, fmt.Errorf("failed to expire pending payments: %w", err)
	}

	if affected > 0 {
		r.Log.Info("pending payments expired",
			"count", affected,
			"older_than", olderThan,
		)
	}
	return affected, nil
}
