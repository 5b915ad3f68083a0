package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/MurderPatro1/vk-course-bot/internal/domain"
	"github.com/MurderPatro1/vk-course-bot/internal/ports/service"
	shopUsecase "github.com/MurderPatro1/vk-course-bot/internal/usecases/shop"
	"github.com/gin-gonic/gin"
)

type Controller struct {
	ShopService    *shopUsecase.Service
	PaymentService service.IPaymentService
	Log            *slog.Logger
}

func New(
	shopService *shopUsecase.Service,
	paymentService service.IPaymentService,
	log *slog.Logger,
) *Controller {
	return &Controller{
		ShopService:    shopService,
		PaymentService: paymentService,
		Log:            log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	admin := router.Group("/admin")
	{
		admin.POST("/courses/:id/price", c.updatePrice)
		admin.POST("/payments/resend", c.resendPayment)
	}
}

// UpdatePriceRequest запрос на смену цены курса
type UpdatePriceRequest struct {
	Price int64 `json:"price" binding:"required,gt=0"` // новая цена в рублях
}

// updatePrice меняет цену курса, действует только на новые платёжные ссылки
func (c *Controller) updatePrice(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	var req UpdatePriceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.Log.Warn("failed to bind update price request", "error", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := c.ShopService.UpdateCoursePrice(ctx.Request.Context(), courseID, req.Price); err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		c.Log.Error("failed to update course price",
			"error", err,
			"course_id", courseID,
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// ResendPaymentRequest запрос на ручной ресенд курса по оплаченному платежу
type ResendPaymentRequest struct {
	Label string `json:"label" binding:"required"`
}

// resendPayment повторно доставляет курс покупателю
func (c *Controller) resendPayment(ctx *gin.Context) {
	var req ResendPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.Log.Warn("failed to bind resend request", "error", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := c.PaymentService.Redeliver(ctx.Request.Context(), req.Label); err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
			return
		}
		c.Log.Error("failed to resend course",
			"error", err,
			"label", req.Label,
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
