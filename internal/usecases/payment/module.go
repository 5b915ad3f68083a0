package payment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MurderPatro1/vk-course-bot/internal/domain"
	"github.com/MurderPatro1/vk-course-bot/internal/ports/kafka"
	paymentPort "github.com/MurderPatro1/vk-course-bot/internal/ports/payment"
	"github.com/MurderPatro1/vk-course-bot/internal/ports/repository"
	"github.com/MurderPatro1/vk-course-bot/internal/ports/service"
	"github.com/MurderPatro1/vk-course-bot/internal/ports/storage"

	"github.com/google/uuid"
)

type Service struct {
	PaymentRepo     repository.IPaymentRepo
	CourseRepo      repository.ICourseRepo
	PaymentProvider paymentPort.IPaymentProvider // YooMoney Quickpay
	VKService       service.IVKService
	S3Client        storage.IS3Client
	AlerterService  service.IAlerterService
	EventProducer   kafka.IEventProducer
	Log             *slog.Logger
}

func New(
	paymentRepo repository.IPaymentRepo,
	courseRepo repository.ICourseRepo,
	paymentProvider paymentPort.IPaymentProvider,
	vkService service.IVKService,
	s3Client storage.IS3Client,
	alerterService service.IAlerterService,
	eventProducer kafka.IEventProducer,
	log *slog.Logger,
) *Service {
	return &Service{
		PaymentRepo:     paymentRepo,
		CourseRepo:      courseRepo,
		PaymentProvider: paymentProvider,
		VKService:       vkService,
		S3Client:        s3Client,
		AlerterService:  alerterService,
		EventProducer:   eventProducer,
		Log:             log,
	}
}

// CreatePayment создаёт pending-запись в леджере и возвращает её вместе
// с платёжной ссылкой. Цена читается из каталога один раз и фиксируется
// в записи: смена цены после выдачи ссылки на этот платёж не влияет.
func (s *Service) CreatePayment(ctx context.Context, userID, courseID int64) (*domain.Payment, string, error) {
	course, err := s.CourseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get course: %w", err)
	}

	label := newLabel(userID, courseID)

	// Ссылка строится без сетевых вызовов, поэтому проверяем провайдера
	// до записи в леджер: либо и запись, и ссылка, либо ничего
	paymentURL, err := s.PaymentProvider.BuildPaymentURL(paymentPort.PaymentURLRequest{
		Label:  label,
		Amount: course.Price,
		Title:  course.Title,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to build payment url: %w", err)
	}

	payment := &domain.Payment{
		UserID:    userID,
		CourseID:  courseID,
		Label:     label,
		Amount:    course.Price,
		Status:    domain.PaymentStatusPending,
		CreatedAt: time.Now(),
	}

	if err := s.PaymentRepo.Create(ctx, payment); err != nil {
		return nil, "", fmt.Errorf("failed to create payment: %w", err)
	}

	s.sendEvent(ctx, "payment.created", payment)

	s.Log.Info("payment created",
		"payment_id", payment.ID,
		"user_id", userID,
		"course_id", courseID,
		"label", label,
		"amount", course.Price,
	)

	return payment, paymentURL, nil
}

// newLabel собирает уникальную метку платежа {user_id}:{course_id}:{token}.
// Токен - uuid без дефисов, подобрать его перебором нереально
func newLabel(userID, courseID int64) string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("%d:%d:%s", userID, courseID, token)
}

// sendEvent публикует событие платёжного цикла в Kafka, best-effort
func (s *Service) sendEvent(ctx context.Context, event string, payment *domain.Payment) {
	if s.EventProducer == nil {
		return
	}

	err := s.EventProducer.SendPaymentEvent(ctx, event, payment.Label, map[string]interface{}{
		"payment_id": payment.ID,
		"user_id":    payment.UserID,
		"course_id":  payment.CourseID,
		"amount":     payment.Amount,
		"status":     string(payment.Status),
	})
	if err != nil {
		s.Log.Warn("failed to send payment event",
			"error", err,
			"event", event,
			"label", payment.Label,
		)
	}
}
