package yoomoney

import (
	"log/slog"
	"net/http"

	paymentPort "github.com/MurderPatro1/vk-course-bot/internal/ports/payment"
	"github.com/MurderPatro1/vk-course-bot/internal/ports/service"
	"github.com/gin-gonic/gin"
)

type Controller struct {
	Verifier       paymentPort.INotificationVerifier
	PaymentService service.IPaymentService
	Log            *slog.Logger
}

func New(
	verifier paymentPort.INotificationVerifier,
	paymentService service.IPaymentService,
	log *slog.Logger,
) *Controller {
	return &Controller{
		Verifier:       verifier,
		PaymentService: paymentService,
		Log:            log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	router.POST("/yoomoney", c.handleNotification)
}

// handleNotification обрабатывает HTTP-уведомление YooMoney об оплате.
// Уведомление приходит form-urlencoded. Невалидная подпись - 400 без
// деталей. Внутренняя ошибка - 500, провайдер перешлёт уведомление позже,
// идемпотентность обработки это допускает.
func (c *Controller) handleNotification(ctx *gin.Context) {
	if err := ctx.Request.ParseForm(); err != nil {
		c.Log.Warn("failed to parse notification form", "error", err)
		ctx.String(http.StatusBadRequest, "invalid")
		return
	}

	fields := make(map[string]string, len(ctx.Request.PostForm))
	for key := range ctx.Request.PostForm {
		fields[key] = ctx.Request.PostForm.Get(key)
	}

	if !c.Verifier.Verify(fields) {
		c.Log.Warn("notification with invalid signature",
			"operation_id", fields["operation_id"],
			"label", fields["label"],
		)
		ctx.String(http.StatusBadRequest, "invalid")
		return
	}

	label := fields["label"]

	outcome, err := c.PaymentService.HandleConfirmedPayment(ctx.Request.Context(), label)
	if err != nil {
		c.Log.Error("failed to handle confirmed payment",
			"error", err,
			"label", label,
		)
		// Без деталей наружу: провайдер ретраит по 500
		ctx.String(http.StatusInternalServerError, "error")
		return
	}

	c.Log.Info("notification processed",
		"label", label,
		"outcome", string(outcome),
	)

	ctx.String(http.StatusOK, "ok")
}
