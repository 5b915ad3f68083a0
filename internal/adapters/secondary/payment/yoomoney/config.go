package yoomoney

const defaultQuickpayURL = "https://yoomoney.ru/quickpay/confirm.xml"

type Config struct {
	Receiver           string `envconfig:"RECEIVER"`                             // номер кошелька-получателя
	NotificationSecret string `envconfig:"NOTIFICATION_SECRET"`                  // секрет проверки уведомлений
	QuickpayURL        string `envconfig:"QUICKPAY_URL"`                         // форма quickpay, по умолчанию confirm.xml
	SuccessURL         string `envconfig:"SUCCESS_URL" default:"https://vk.com"` // куда вернуть покупателя после оплаты
	PaymentType        string `envconfig:"PAYMENT_TYPE" default:"SB"`            // SB - оплата картой
}

// IsConfigured проверяет, что провайдер готов принимать платежи
func (c *Config) IsConfigured() bool {
	return c != nil && c.Receiver != ""
}
