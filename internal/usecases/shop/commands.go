package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MurderPatro1/vk-course-bot/internal/domain"
	"github.com/MurderPatro1/vk-course-bot/internal/usecases/shop/texts"
)

// HandleCommand обрабатывает нажатие кнопки клавиатуры
func (s *Service) HandleCommand(ctx context.Context, peerID, userID int64, payload *domain.ButtonPayload) error {
	switch payload.Cmd {
	case domain.CmdCatalog:
		return s.HandleCatalog(ctx, peerID)
	case domain.CmdBuy:
		return s.HandleBuy(ctx, peerID, userID, payload.CourseID)
	case domain.CmdBack:
		return s.HandleStart(ctx, peerID)
	default:
		s.Log.Debug("unknown button command",
			"cmd", payload.Cmd,
			"user_id", userID,
		)
		return s.HandleStart(ctx, peerID)
	}
}

// HandleText обрабатывает произвольный текст от покупателя
func (s *Service) HandleText(ctx context.Context, peerID, userID int64, text string) error {
	switch strings.ToLower(text) {
	case "начать", "старт", "привет", "меню", "start":
		return s.HandleStart(ctx, peerID)
	case "каталог", "курсы":
		return s.HandleCatalog(ctx, peerID)
	default:
		return s.VKService.SendMessageWithKeyboard(ctx, peerID, texts.UnknownInput, texts.MainKeyboard())
	}
}

// HandleStart приветствие с основной клавиатурой
func (s *Service) HandleStart(ctx context.Context, peerID int64) error {
	return s.VKService.SendMessageWithKeyboard(ctx, peerID, texts.Greeting, texts.MainKeyboard())
}

// HandleCatalog показывает каталог курсов с кнопками покупки
func (s *Service) HandleCatalog(ctx context.Context, peerID int64) error {
	courses, err := s.ListCourses(ctx)
	if err != nil {
		s.Log.Error("failed to list courses for catalog",
			"error", err,
			"peer_id", peerID,
		)
		return domain.WrapBusinessError(fmt.Errorf("failed to list courses: %w", err))
	}

	if len(courses) == 0 {
		return s.VKService.SendMessageWithKeyboard(ctx, peerID, texts.CatalogEmpty, texts.MainKeyboard())
	}

	return s.VKService.SendMessageWithKeyboard(ctx, peerID, texts.FormatCatalog(courses), texts.CatalogKeyboard(courses))
}

// HandleBuy создаёт платёж и отправляет покупателю ссылку на оплату
func (s *Service) HandleBuy(ctx context.Context, peerID, userID, courseID int64) error {
	course, err := s.CourseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			s.Log.Warn("buy requested for unknown course",
				"course_id", courseID,
				"user_id", userID,
			)
			return s.HandleCatalog(ctx, peerID)
		}
		return fmt.Errorf("failed to get course: %w", err)
	}

	payment, paymentURL, err := s.PaymentService.CreatePayment(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, domain.ErrProviderUnavailable) {
			s.Log.Warn("payment provider is not configured",
				"course_id", courseID,
				"user_id", userID,
			)
			return s.VKService.SendMessageWithKeyboard(ctx, peerID, texts.PaymentUnavailable, texts.MainKeyboard())
		}
		s.Log.Error("failed to create payment",
			"error", err,
			"course_id", courseID,
			"user_id", userID,
		)
		return domain.WrapBusinessError(fmt.Errorf("failed to create payment: %w", err))
	}

	// В предложении показываем сумму из созданного платежа: между чтением
	// каталога и созданием платежа цена могла измениться админом
	return s.VKService.SendMessageWithKeyboard(ctx, peerID,
		texts.FormatPaymentOffer(course.Title, payment.Amount, paymentURL),
		texts.PaymentKeyboard(paymentURL),
	)
}
