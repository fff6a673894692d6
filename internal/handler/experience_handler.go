package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"bookit/internal/service"
	apperrors "bookit/pkg/app_errors"
	"bookit/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ExperienceHandler struct {
	service service.ExperienceService
}

func NewExperienceHandler(service service.ExperienceService) *ExperienceHandler {
	return &ExperienceHandler{service: service}
}

func (h *ExperienceHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("experiences", h.List)
		router.GET("experiences/:id", h.GetWithSlots)
	}
}

func (h *ExperienceHandler) List(c *gin.Context) {
	experiences, err := h.service.List(c)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(experiences),
		"data":  experiences,
	})
}

func (h *ExperienceHandler) GetWithSlots(c *gin.Context) {
	id := c.Param("id")
	idInt, err := strconv.Atoi(id)
	if err != nil {
		RespondError(c, http.StatusBadRequest, KindValidationFailed, "Invalid experience id", nil)
		return
	}

	detail, err := h.service.GetWithSlots(c, idInt, time.Now().UTC())
	if err != nil {
		h.handleError(c, err, "GetWithSlots")
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *ExperienceHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrExperienceNotFound):
		log.Warn("Experience not found")
		RespondError(c, http.StatusNotFound, KindNotFound, "Experience not found", nil)
	default:
		log.Error("Unexpected error")
		RespondError(c, http.StatusInternalServerError, KindInternal, "Internal server error", nil)
	}
}
