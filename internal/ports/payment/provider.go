package payment

// IPaymentProvider интерфейс платёжного провайдера (YooMoney Quickpay).
// Use case зависит только от этого интерфейса, не зная деталей реализации.
type IPaymentProvider interface {
	// BuildPaymentURL строит платёжную ссылку для покупателя.
	// Возвращает domain.ErrProviderUnavailable, если провайдер не настроен.
	BuildPaymentURL(req PaymentURLRequest) (string, error)
}

// PaymentURLRequest запрос на построение платёжной ссылки
type PaymentURLRequest struct {
	Label  string // метка для корреляции с леджером
	Amount int64  // сумма в рублях
	Title  string // название курса для назначения платежа
}

// INotificationVerifier проверяет подлинность уведомления провайдера об оплате.
// Чистая функция без побочных эффектов: леджер не трогает.
type INotificationVerifier interface {
	Verify(fields map[string]string) bool
}
