package app

import (
	"context"
	"fmt"
	"net/http"

	server "github.com/MurderPatro1/vk-course-bot/internal/adapters/primary/http"
	adminController "github.com/MurderPatro1/vk-course-bot/internal/adapters/primary/http/controllers/admin"
	healthcheckController "github.com/MurderPatro1/vk-course-bot/internal/adapters/primary/http/controllers/healthcheck"
	vkController "github.com/MurderPatro1/vk-course-bot/internal/adapters/primary/http/controllers/vk"
	yoomoneyController "github.com/MurderPatro1/vk-course-bot/internal/adapters/primary/http/controllers/yoomoney"
	"github.com/MurderPatro1/vk-course-bot/internal/adapters/primary/http/middlewares"
	alerterAdapter "github.com/MurderPatro1/vk-course-bot/internal/adapters/secondary/alerter"
	kafkaAdapter "github.com/MurderPatro1/vk-course-bot/internal/adapters/secondary/kafka"
	"github.com/MurderPatro1/vk-course-bot/internal/adapters/secondary/payment/yoomoney"
	"github.com/MurderPatro1/vk-course-bot/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/MurderPatro1/vk-course-bot/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/MurderPatro1/vk-course-bot/internal/adapters/secondary/storage/s3"
	vkAdapter "github.com/MurderPatro1/vk-course-bot/internal/adapters/secondary/vk"
	"github.com/MurderPatro1/vk-course-bot/internal/ports/cache"
	"github.com/MurderPatro1/vk-course-bot/internal/ports/kafka"
	"github.com/MurderPatro1/vk-course-bot/internal/ports/repository"
	"github.com/MurderPatro1/vk-course-bot/internal/ports/service"
	"github.com/MurderPatro1/vk-course-bot/internal/ports/storage"
	courseRepo "github.com/MurderPatro1/vk-course-bot/internal/repository/course"
	paymentRepo "github.com/MurderPatro1/vk-course-bot/internal/repository/payment"
	alerterService "github.com/MurderPatro1/vk-course-bot/internal/services/alerter"
	jobScheduler "github.com/MurderPatro1/vk-course-bot/internal/services/jobs"
	vkService "github.com/MurderPatro1/vk-course-bot/internal/services/vk"
	shopUsecase "github.com/MurderPatro1/vk-course-bot/internal/usecases/shop"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Dependencies struct {
	DB            *sqlx.DB
	HTTPServer    *http.Server
	VKService     *vkService.Service
	Cache         cache.Cache
	EventProducer kafka.IEventProducer
	JobScheduler  *jobScheduler.Scheduler
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	db, err := a.initPostgres()
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	repos := a.initRepositories(db)
	vkSvc, err := a.initVK()
	if err != nil {
		return nil, fmt.Errorf("failed to init vk: %w", err)
	}

	externalServices := a.initExternalServices()

	paymentUseCase := a.initPayment(repos, vkSvc, externalServices)
	shopUseCase := shopUsecase.New(
		repos.Course,
		paymentUseCase,
		vkSvc,
		externalServices.Cache, // может быть nil
		a.Log,
	)
	vkSvc.SetBotService(shopUseCase)

	httpServer := a.initHTTP(db, vkSvc, paymentUseCase, shopUseCase)
	scheduler := a.initJobScheduler(externalServices.Alerter, repos)

	return &Dependencies{
		DB:            db,
		HTTPServer:    httpServer,
		VKService:     vkSvc,
		Cache:         externalServices.Cache,
		EventProducer: externalServices.EventProducer,
		JobScheduler:  scheduler,
	}, nil
}

// repositories содержит инициализированные репозитории
type repositories struct {
	Course  repository.ICourseRepo
	Payment repository.IPaymentRepo
}

// initRepositories инициализирует репозитории для работы с БД
func (a *App) initRepositories(db *sqlx.DB) *repositories {
	persistenceLayer := pg.NewDB(db)
	return &repositories{
		Course:  courseRepo.New(persistenceLayer, a.Log),
		Payment: paymentRepo.New(persistenceLayer, a.Log),
	}
}

// initVK инициализирует VK клиент и сервис
func (a *App) initVK() (*vkService.Service, error) {
	if a.Cfg.VK == nil || a.Cfg.VK.Token == "" {
		return nil, fmt.Errorf("vk token is required: set VK_TOKEN environment variable")
	}
	if a.Cfg.VK.ConfirmationToken == "" {
		a.Log.Warn("vk confirmation token is not set, callback confirmation will fail")
	}

	client := vkAdapter.NewClient(a.Cfg.VK, a.Log)
	return vkService.New(client, a.Log), nil
}

// externalServices содержит внешние сервисы (опциональные)
type externalServices struct {
	Alerter       service.IAlerterService
	Cache         cache.Cache
	S3            storage.IS3Client
	EventProducer kafka.IEventProducer
}

// initExternalServices инициализирует внешние сервисы (Alerter, Cache, S3, Kafka).
// Все опциональные: без них бот работает, но соответствующая
// функциональность деградирует
func (a *App) initExternalServices() *externalServices {
	services := &externalServices{}

	// Alerter - опциональный
	if a.Cfg.Alerter.IsConfigured() {
		alerterClient := alerterAdapter.NewClient(a.Cfg.Alerter, a.Log)
		services.Alerter = alerterService.New(alerterClient)
		a.Log.Info("alerter initialized", "peer_id", a.Cfg.Alerter.PeerID)
	}

	// Redis Cache - опциональный
	if a.Cfg.Redis != nil {
		redisClient, err := a.Cfg.Redis.NewConnection()
		if err != nil {
			a.Log.Warn("failed to init redis cache, continuing without cache", "error", err)
		} else {
			services.Cache = redisAdapter.NewClient(redisClient)
			a.Log.Info("redis cache connected successfully")
		}
	}

	// S3 - опциональный, без него доставка файлов уходит в фолбэк с алертом
	if a.Cfg.S3.IsConfigured() {
		minioClient, err := a.Cfg.S3.NewClient()
		if err != nil {
			a.Log.Warn("failed to init s3 storage, course files delivery disabled", "error", err)
		} else {
			services.S3 = s3Adapter.NewClient(minioClient, a.Cfg.S3.Bucket, a.Log)
			a.Log.Info("s3 storage connected successfully", "bucket", a.Cfg.S3.Bucket)
		}
	}

	// Kafka producer - опциональный
	if a.Cfg.Kafka.IsConfigured() {
		producer, err := kafkaAdapter.NewProducer(a.Cfg.Kafka, a.Log)
		if err != nil {
			a.Log.Warn("failed to init kafka producer, continuing without events", "error", err)
		} else {
			services.EventProducer = producer
		}
	}

	return services
}

// initHTTP инициализирует HTTP сервер и контроллеры
func (a *App) initHTTP(
	db *sqlx.DB,
	vkSvc *vkService.Service,
	paymentService service.IPaymentService,
	shopService *shopUsecase.Service,
) *http.Server {
	verifier := yoomoney.NewVerifier(a.notificationSecret(), a.Log)

	controllers := []server.Controller{
		healthcheckController.New(db, a.Log),
		vkController.New(vkSvc, a.Cfg.VK, a.Log),
		yoomoneyController.New(verifier, paymentService, a.Log),
		adminController.New(shopService, paymentService, a.Log),
	}

	middlewareChain := []gin.HandlerFunc{
		middlewares.RecoveryLogger(a.Log),
	}
	if a.Cfg.Server.EnableLoggingMiddleware {
		middlewareChain = append(middlewareChain, middlewares.RequestLogger(a.Log))
	}

	return server.NewHTTPServer(a.Cfg.Server, a.Log, middlewareChain, controllers...)
}

func (a *App) notificationSecret() string {
	if a.Cfg.YooMoney == nil {
		return ""
	}
	return a.Cfg.YooMoney.NotificationSecret
}

// initJobScheduler инициализирует планировщик джоб
func (a *App) initJobScheduler(
	alerterSvc service.IAlerterService,
	repos *repositories,
) *jobScheduler.Scheduler {
	scheduler := jobScheduler.NewScheduler(a.Log, alerterSvc)

	// Экспайрер включается только при заданном TTL
	if a.Cfg.Shop != nil && a.Cfg.Shop.PendingPaymentTTL > 0 {
		paymentExpirer := jobScheduler.NewPaymentExpirer(repos.Payment, a.Cfg.Shop.PendingPaymentTTL, a.Log)
		scheduler.Register(paymentExpirer)
		a.Log.Info("payment expirer job registered", "ttl", a.Cfg.Shop.PendingPaymentTTL)
	}

	return scheduler
}
