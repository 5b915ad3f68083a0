package app

import (
	"github.com/MurderPatro1/vk-course-bot/internal/adapters/secondary/payment/yoomoney"
	vkService "github.com/MurderPatro1/vk-course-bot/internal/services/vk"
	paymentUsecase "github.com/MurderPatro1/vk-course-bot/internal/usecases/payment"
)

// initPayment инициализирует платёжный use case.
// YooMoney может быть не настроен: провайдер тогда возвращает
// ErrProviderUnavailable, покупатель видит сообщение о недоступности оплаты
func (a *App) initPayment(
	repos *repositories,
	vkSvc *vkService.Service,
	externalServices *externalServices,
) *paymentUsecase.Service {
	yooCfg := a.Cfg.YooMoney
	if yooCfg == nil {
		yooCfg = &yoomoney.Config{}
	}
	if !yooCfg.IsConfigured() {
		a.Log.Warn("yoomoney receiver is not configured, payments disabled")
	}

	paymentProvider := yoomoney.NewProvider(yooCfg, a.Log)

	paymentUseCase := paymentUsecase.New(
		repos.Payment,
		repos.Course,
		paymentProvider,
		vkSvc,
		externalServices.S3,            // может быть nil
		externalServices.Alerter,       // может быть nil
		externalServices.EventProducer, // может быть nil
		a.Log,
	)

	a.Log.Info("payment system initialized successfully")
	return paymentUseCase
}
