package handler

import (
	"errors"
	"fmt"
	"net/http"

	"bookit/internal/model"
	"bookit/internal/service"
	apperrors "bookit/pkg/app_errors"
	"bookit/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PromoHandler struct {
	service service.PromoService
}

func NewPromoHandler(service service.PromoService) *PromoHandler {
	return &PromoHandler{service: service}
}

func (h *PromoHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("promo/validate", h.ValidatePromo)
	}
}

func (h *PromoHandler) ValidatePromo(c *gin.Context) {
	var req model.ValidatePromoRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	validation, err := h.service.ValidatePromo(c, req.Code, *req.OrderAmount)
	if err != nil {
		h.handlePromoError(c, err, "ValidatePromo")
		return
	}

	c.JSON(http.StatusOK, validation.Response())
}

func (h *PromoHandler) handlePromoError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))

	var minOrderErr *apperrors.MinOrderAmountError

	switch {
	case errors.Is(err, apperrors.ErrPromoNotFound):
		// 不存在與不符資格不做區分，一律回報無效
		log.Warn("Promo code not found")
		RespondError(c, http.StatusNotFound, KindNotFound, "Invalid or expired promo code", nil)
	case errors.As(err, &minOrderErr):
		log.Warn("Order amount below promo minimum")
		RespondError(c, http.StatusConflict, KindConflict,
			fmt.Sprintf("Minimum order amount of %.2f required to use this promo code", minOrderErr.Minimum),
			map[string]interface{}{"min_order_amount": fmt.Sprintf("%.2f", minOrderErr.Minimum)},
		)
	default:
		log.Error("Unexpected error")
		RespondError(c, http.StatusInternalServerError, KindInternal, "Internal server error", nil)
	}
}
