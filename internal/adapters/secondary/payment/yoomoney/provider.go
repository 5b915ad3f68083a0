package yoomoney

import (
	"fmt"
	"net/url"
	"strconv"

	"log/slog"

	"github.com/MurderPatro1/vk-course-bot/internal/domain"
	paymentPort "github.com/MurderPatro1/vk-course-bot/internal/ports/payment"
)

// Provider реализует IPaymentProvider поверх формы YooMoney Quickpay.
// Построение ссылки чисто клиентское: HTTP-запросов к провайдеру нет,
// покупатель сам открывает форму по ссылке.
type Provider struct {
	cfg *Config
	log *slog.Logger
}

// NewProvider создаёт новый Quickpay-провайдер
func NewProvider(cfg *Config, log *slog.Logger) *Provider {
	return &Provider{
		cfg: cfg,
		log: log,
	}
}

// BuildPaymentURL строит платёжную ссылку Quickpay с меткой для корреляции
func (p *Provider) BuildPaymentURL(req paymentPort.PaymentURLRequest) (string, error) {
	if !p.cfg.IsConfigured() {
		return "", domain.ErrProviderUnavailable
	}

	base := p.cfg.QuickpayURL
	if base == "" {
		base = defaultQuickpayURL
	}

	params := url.Values{}
	params.Set("receiver", p.cfg.Receiver)
	params.Set("quickpay-form", "shop")
	params.Set("targets", fmt.Sprintf("Покупка курса: %s", req.Title))
	params.Set("paymentType", p.cfg.PaymentType)
	params.Set("sum", strconv.FormatInt(req.Amount, 10))
	params.Set("label", req.Label)
	params.Set("successURL", p.cfg.SuccessURL)

	paymentURL := base + "?" + params.Encode()

	p.log.Debug("payment url built",
		"label", req.Label,
		"amount", req.Amount,
	)

	return paymentURL, nil
}
