package yoomoney

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/MurderPatro1/vk-course-bot/internal/domain"
	paymentPort "github.com/MurderPatro1/vk-course-bot/internal/ports/payment"
)

func TestProvider_BuildPaymentURL(t *testing.T) {
	provider := NewProvider(&Config{
		Receiver:    "410011234567890",
		SuccessURL:  "https://vk.com",
		PaymentType: "SB",
	}, testLogger())

	paymentURL, err := provider.BuildPaymentURL(paymentPort.PaymentURLRequest{
		Label:  "52001:1:deadbeefdeadbeefdeadbeefdeadbeef",
		Amount: 1990,
		Title:  "Курс по инвестициям",
	})
	if err != nil {
		t.Fatalf("BuildPaymentURL: %v", err)
	}

	parsed, err := url.Parse(paymentURL)
	if err != nil {
		t.Fatalf("failed to parse payment url: %v", err)
	}
	if !strings.HasPrefix(paymentURL, defaultQuickpayURL) {
		t.Errorf("payment url %q does not start with quickpay form url", paymentURL)
	}

	query := parsed.Query()
	expected := map[string]string{
		"receiver":      "410011234567890",
		"quickpay-form": "shop",
		"targets":       "Покупка курса: Курс по инвестициям",
		"paymentType":   "SB",
		"sum":           "1990",
		"label":         "52001:1:deadbeefdeadbeefdeadbeefdeadbeef",
		"successURL":    "https://vk.com",
	}
	for key, want := range expected {
		if got := query.Get(key); got != want {
			t.Errorf("param %s = %q, want %q", key, got, want)
		}
	}
}

func TestProvider_NotConfigured(t *testing.T) {
	provider := NewProvider(&Config{}, testLogger())

	_, err := provider.BuildPaymentURL(paymentPort.PaymentURLRequest{
		Label:  "52001:1:deadbeef",
		Amount: 100,
		Title:  "Курс",
	})
	if !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestProvider_CustomQuickpayURL(t *testing.T) {
	provider := NewProvider(&Config{
		Receiver:    "410011234567890",
		QuickpayURL: "https://example.test/quickpay",
	}, testLogger())

	paymentURL, err := provider.BuildPaymentURL(paymentPort.PaymentURLRequest{
		Label:  "1:1:feed",
		Amount: 500,
		Title:  "Курс",
	})
	if err != nil {
		t.Fatalf("BuildPaymentURL: %v", err)
	}
	if !strings.HasPrefix(paymentURL, "https://example.test/quickpay?") {
		t.Errorf("payment url %q does not use configured base", paymentURL)
	}
}
