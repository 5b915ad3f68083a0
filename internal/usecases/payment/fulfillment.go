package payment

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/MurderPatro1/vk-course-bot/internal/domain"
	"github.com/MurderPatro1/vk-course-bot/internal/usecases/shop/texts"
)

// HandleConfirmedPayment обрабатывает уведомление об оплате, подпись которого
// уже проверена на транспортном уровне.
//
// Переход pending -> paid выполняется условным UPDATE в репозитории, поэтому
// ровно один вызов для метки получает claimed = true и доставляет курс.
// Повторные уведомления (ретраи провайдера, дубли) становятся no-op.
// Ошибка доставки статус не откатывает: деньги получены, курс дошлёт
// оператор по алерту или ручной ресенд.
func (s *Service) HandleConfirmedPayment(ctx context.Context, label string) (domain.FulfillmentOutcome, error) {
	payment, err := s.PaymentRepo.GetByLabel(ctx, label)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			// Метку мы не выдавали: подпись валидная, но это не наш платёж
			s.Log.Warn("confirmed payment with unknown label", "label", label)
			return domain.OutcomeUnknownLabel, nil
		}
		return "", fmt.Errorf("failed to get payment by label: %w", err)
	}

	if payment.Status == domain.PaymentStatusExpired {
		// Покупатель оплатил уже протухший платёж - нужен ручной возврат
		s.Log.Warn("payment received for expired label",
			"label", label,
			"user_id", payment.UserID,
		)
		s.alert(ctx, fmt.Sprintf("⚠️ Получена оплата по протухшему платежу %s (vk id %d), нужен ручной возврат или выдача курса", label, payment.UserID))
		return domain.OutcomeAlreadyProcessed, nil
	}

	claimed, err := s.PaymentRepo.ClaimPaid(ctx, label)
	if err != nil {
		return "", fmt.Errorf("failed to claim payment: %w", err)
	}
	if !claimed {
		s.Log.Debug("payment already processed", "label", label)
		return domain.OutcomeAlreadyProcessed, nil
	}

	payment.Status = domain.PaymentStatusPaid
	s.sendEvent(ctx, "payment.paid", payment)

	s.Log.Info("payment confirmed",
		"payment_id", payment.ID,
		"user_id", payment.UserID,
		"course_id", payment.CourseID,
		"label", label,
	)

	if err := s.deliverCourse(ctx, payment); err != nil {
		s.Log.Error("failed to deliver course after payment",
			"error", err,
			"label", label,
			"user_id", payment.UserID,
			"course_id", payment.CourseID,
		)

		// Покупателю - что файл дошлют, оператору - алерт с меткой
		if sendErr := s.VKService.SendMessage(ctx, payment.UserID, texts.DeliveryFallback); sendErr != nil {
			s.Log.Error("failed to send delivery fallback message",
				"error", sendErr,
				"user_id", payment.UserID,
			)
		}
		s.alert(ctx, fmt.Sprintf("⚠️ Оплата %s прошла, но курс не доставлен (vk id %d, курс %d): %s", label, payment.UserID, payment.CourseID, err.Error()))

		return domain.OutcomeDeliveryFailed, nil
	}

	return domain.OutcomeFulfilled, nil
}

// Redeliver повторно доставляет курс по уже оплаченному платежу (ручной ресенд)
func (s *Service) Redeliver(ctx context.Context, label string) error {
	payment, err := s.PaymentRepo.GetByLabel(ctx, label)
	if err != nil {
		return fmt.Errorf("failed to get payment by label: %w", err)
	}

	if payment.Status != domain.PaymentStatusPaid {
		return fmt.Errorf("payment %s is not paid, status: %s", label, payment.Status)
	}

	if err := s.deliverCourse(ctx, payment); err != nil {
		return fmt.Errorf("failed to redeliver course: %w", err)
	}

	s.Log.Info("course redelivered",
		"label", label,
		"user_id", payment.UserID,
		"course_id", payment.CourseID,
	)
	return nil
}

// deliverCourse забирает файл курса из S3, загружает его документом
// в диалог и отправляет покупателю
func (s *Service) deliverCourse(ctx context.Context, payment *domain.Payment) error {
	course, err := s.CourseRepo.GetByID(ctx, payment.CourseID)
	if err != nil {
		return fmt.Errorf("failed to get course: %w", err)
	}

	if s.S3Client == nil {
		return fmt.Errorf("file storage is not configured")
	}

	data, err := s.S3Client.GetFile(ctx, course.FilePath)
	if err != nil {
		return fmt.Errorf("failed to get course file from storage: %w", err)
	}

	// В личных диалогах peer_id совпадает с id пользователя
	peerID := payment.UserID

	attachment, err := s.VKService.UploadDocument(ctx, peerID, path.Base(course.FilePath), data)
	if err != nil {
		return fmt.Errorf("failed to upload course file: %w", err)
	}

	if err := s.VKService.SendMessageWithAttachment(ctx, peerID, texts.DeliverySuccess, attachment); err != nil {
		return fmt.Errorf("failed to send course file: %w", err)
	}

	s.Log.Debug("course delivered",
		"user_id", payment.UserID,
		"course_id", payment.CourseID,
		"attachment", attachment,
	)
	return nil
}

// alert шлёт сообщение оператору, best-effort
func (s *Service) alert(ctx context.Context, message string) {
	if s.AlerterService == nil {
		return
	}
	if err := s.AlerterService.SendAlert(ctx, message); err != nil {
		s.Log.Warn("failed to send alert", "error", err)
	}
}
