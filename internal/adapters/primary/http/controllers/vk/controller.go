package vk

import (
	"log/slog"
	"net/http"

	"github.com/MurderPatro1/vk-course-bot/internal/domain"

	vkAdapter "github.com/MurderPatro1/vk-course-bot/internal/adapters/secondary/vk"
	vkService "github.com/MurderPatro1/vk-course-bot/internal/services/vk"
	"github.com/gin-gonic/gin"
)

type Controller struct {
	VKService *vkService.Service
	Cfg       *vkAdapter.Config
	Log       *slog.Logger
}

func New(vkSvc *vkService.Service, cfg *vkAdapter.Config, log *slog.Logger) *Controller {
	return &Controller{
		VKService: vkSvc,
		Cfg:       cfg,
		Log:       log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	router.POST("/vk", c.handleCallback)
}

// handleCallback обрабатывает события VK Callback API.
// VK ждёт в ответ строку "ok" (или строку подтверждения), иначе ретраит
// событие. Поэтому и при ошибках обработки отвечаем "ok" - ошибки логируем,
// а повторную доставку события ретраем VK не провоцируем.
func (c *Controller) handleCallback(ctx *gin.Context) {
	var event domain.CallbackEvent
	if err := ctx.ShouldBindJSON(&event); err != nil {
		c.Log.Warn("failed to bind callback event", "error", err)
		ctx.String(http.StatusBadRequest, "invalid request")
		return
	}

	// Хендшейк подключения Callback API: отвечаем строкой подтверждения
	if event.Type == domain.CallbackTypeConfirmation {
		c.Log.Info("confirmation request received", "group_id", event.GroupID)
		ctx.String(http.StatusOK, c.Cfg.ConfirmationToken)
		return
	}

	// Секрет из настроек сообщества: при несовпадении событие отбрасываем,
	// но отвечаем "ok", чтобы не раскрывать проверку и не ловить ретраи
	if c.Cfg.CallbackSecret != "" && event.Secret != c.Cfg.CallbackSecret {
		c.Log.Warn("callback event with invalid secret",
			"type", event.Type,
			"group_id", event.GroupID,
			"event_id", event.EventID,
		)
		ctx.String(http.StatusOK, "ok")
		return
	}

	c.Log.Debug("received callback event",
		"type", event.Type,
		"event_id", event.EventID,
	)

	if err := c.VKService.HandleEvent(ctx.Request.Context(), &event); err != nil {
		// Бизнес-ошибки уже залогированы в UseCase, второй раз не шумим
		if domain.IsBusinessError(err) {
			c.Log.Debug("callback event handling failed",
				"error", err,
				"type", event.Type,
				"event_id", event.EventID,
			)
		} else {
			c.Log.Error("failed to handle callback event",
				"error", err,
				"type", event.Type,
				"event_id", event.EventID,
			)
		}
	}

	ctx.String(http.StatusOK, "ok")
}
