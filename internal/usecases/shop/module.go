package shop

import (
	"log/slog"

	"github.com/MurderPatro1/vk-course-bot/internal/ports/cache"
	"github.com/MurderPatro1/vk-course-bot/internal/ports/repository"
	"github.com/MurderPatro1/vk-course-bot/internal/ports/service"
)

// Service бизнес-логика магазина курсов
type Service struct {
	CourseRepo     repository.ICourseRepo
	PaymentService service.IPaymentService
	VKService      service.IVKService
	Cache          cache.Cache
	Log            *slog.Logger
}

// New создаёт новый сервис для бизнес-логики магазина
func New(
	courseRepo repository.ICourseRepo,
	paymentService service.IPaymentService,
	vkService service.IVKService,
	cacheClient cache.Cache,
	log *slog.Logger,
) *Service {
	return &Service{
		CourseRepo:     courseRepo,
		PaymentService: paymentService,
		VKService:      vkService,
		Cache:          cacheClient,
		Log:            log,
	}
}
