package yoomoney

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/MurderPatro1/vk-course-bot/internal/domain"
	"github.com/gin-gonic/gin"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type verifierStub struct {
	valid bool
}

func (s *verifierStub) Verify(_ map[string]string) bool { return s.valid }

type paymentServiceStub struct {
	labels  []string
	outcome domain.FulfillmentOutcome
	err     error
}

func (s *paymentServiceStub) CreatePayment(_ context.Context, _, _ int64) (*domain.Payment, string, error) {
	return nil, "", nil
}

func (s *paymentServiceStub) HandleConfirmedPayment(_ context.Context, label string) (domain.FulfillmentOutcome, error) {
	s.labels = append(s.labels, label)
	return s.outcome, s.err
}

func (s *paymentServiceStub) Redeliver(_ context.Context, _ string) error { return nil }

func newTestRouter(verifier *verifierStub, payments *paymentServiceStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	New(verifier, payments, testLogger()).RegisterRoutes(router)
	return router
}

func postNotification(router *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/yoomoney", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func notificationForm() url.Values {
	form := url.Values{}
	form.Set("notification_type", "p2p-incoming")
	form.Set("operation_id", "904035776918098009")
	form.Set("amount", "1990.00")
	form.Set("currency", "643")
	form.Set("datetime", "2024-05-12T11:33:04Z")
	form.Set("sender", "41001000000000")
	form.Set("codepro", "false")
	form.Set("label", "52001:1:deadbeefdeadbeefdeadbeefdeadbeef")
	form.Set("sha1_hash", strings.Repeat("a", 40))
	return form
}

func TestNotification_InvalidSignature(t *testing.T) {
	payments := &paymentServiceStub{}
	router := newTestRouter(&verifierStub{valid: false}, payments)

	w := postNotification(router, notificationForm())

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	// Невалидная подпись не доходит до бизнес-логики
	if len(payments.labels) != 0 {
		t.Errorf("handled labels = %v, want none", payments.labels)
	}
}

func TestNotification_Valid(t *testing.T) {
	payments := &paymentServiceStub{outcome: domain.OutcomeFulfilled}
	router := newTestRouter(&verifierStub{valid: true}, payments)

	w := postNotification(router, notificationForm())

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("body = %q, want ok", w.Body.String())
	}
	if len(payments.labels) != 1 || payments.labels[0] != "52001:1:deadbeefdeadbeefdeadbeefdeadbeef" {
		t.Errorf("handled labels = %v", payments.labels)
	}
}

func TestNotification_UnknownLabelStill200(t *testing.T) {
	payments := &paymentServiceStub{outcome: domain.OutcomeUnknownLabel}
	router := newTestRouter(&verifierStub{valid: true}, payments)

	w := postNotification(router, notificationForm())

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestNotification_InternalError500(t *testing.T) {
	payments := &paymentServiceStub{err: errors.New("db down")}
	router := newTestRouter(&verifierStub{valid: true}, payments)

	w := postNotification(router, notificationForm())

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	// Деталей ошибки в ответе нет
	if strings.Contains(w.Body.String(), "db down") {
		t.Errorf("body %q leaks error details", w.Body.String())
	}
}
