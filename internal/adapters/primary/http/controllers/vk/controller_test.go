package vk

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MurderPatro1/vk-course-bot/internal/domain"

	vkAdapter "github.com/MurderPatro1/vk-course-bot/internal/adapters/secondary/vk"
	vkService "github.com/MurderPatro1/vk-course-bot/internal/services/vk"
	"github.com/gin-gonic/gin"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type botServiceStub struct {
	texts []string
}

func (s *botServiceStub) HandleCommand(_ context.Context, _, _ int64, _ *domain.ButtonPayload) error {
	return nil
}

func (s *botServiceStub) HandleText(_ context.Context, _, _ int64, text string) error {
	s.texts = append(s.texts, text)
	return nil
}

func newTestRouter(cfg *vkAdapter.Config) (*gin.Engine, *botServiceStub) {
	gin.SetMode(gin.TestMode)

	svc := vkService.New(nil, testLogger())
	bot := &botServiceStub{}
	svc.SetBotService(bot)

	router := gin.New()
	New(svc, cfg, testLogger()).RegisterRoutes(router)
	return router, bot
}

func postCallback(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/vk", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCallback_Confirmation(t *testing.T) {
	router, _ := newTestRouter(&vkAdapter.Config{ConfirmationToken: "abc123def"})

	w := postCallback(router, `{"type": "confirmation", "group_id": 190000001}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "abc123def" {
		t.Errorf("body = %q, want confirmation token", w.Body.String())
	}
}

func TestCallback_MessageNew(t *testing.T) {
	router, bot := newTestRouter(&vkAdapter.Config{ConfirmationToken: "abc"})

	w := postCallback(router, `{"type": "message_new", "group_id": 190000001, "object": {"message": {"from_id": 52001, "peer_id": 52001, "text": "каталог"}}}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("body = %q, want ok", w.Body.String())
	}
	if len(bot.texts) != 1 || bot.texts[0] != "каталог" {
		t.Errorf("routed texts = %v", bot.texts)
	}
}

func TestCallback_SecretMismatchDropsEvent(t *testing.T) {
	router, bot := newTestRouter(&vkAdapter.Config{ConfirmationToken: "abc", CallbackSecret: "s3cret"})

	w := postCallback(router, `{"type": "message_new", "secret": "wrong", "object": {"message": {"from_id": 52001, "text": "каталог"}}}`)

	// Событие отброшено, но VK получает "ok" и не ретраит
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("body = %q, want ok", w.Body.String())
	}
	if len(bot.texts) != 0 {
		t.Errorf("routed texts = %v, want none", bot.texts)
	}
}

func TestCallback_SecretMatch(t *testing.T) {
	router, bot := newTestRouter(&vkAdapter.Config{ConfirmationToken: "abc", CallbackSecret: "s3cret"})

	w := postCallback(router, `{"type": "message_new", "secret": "s3cret", "object": {"message": {"from_id": 52001, "text": "привет"}}}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if len(bot.texts) != 1 {
		t.Errorf("routed texts = %v, want one", bot.texts)
	}
}

func TestCallback_MalformedBody(t *testing.T) {
	router, _ := newTestRouter(&vkAdapter.Config{ConfirmationToken: "abc"})

	w := postCallback(router, `{"type": `)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCallback_HandlerErrorStillOk(t *testing.T) {
	// Без BotService обработка события падает, но VK всё равно получает "ok"
	gin.SetMode(gin.TestMode)
	svc := vkService.New(nil, testLogger())
	router := gin.New()
	New(svc, &vkAdapter.Config{ConfirmationToken: "abc"}, testLogger()).RegisterRoutes(router)

	w := postCallback(router, `{"type": "message_new", "object": {"message": {"from_id": 52001, "text": "каталог"}}}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("body = %q, want ok", w.Body.String())
	}
}
