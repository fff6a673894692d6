package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"bookit/internal/model"
	"bookit/internal/service"
	apperrors "bookit/pkg/app_errors"
	"bookit/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service service.BookingService
}

func NewBookingHandler(service service.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("bookings", h.CreateBooking)
		router.GET("bookings/:id", h.GetBooking)
		router.GET("bookings/user/:email", h.GetBookingsByEmail)
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.CreateBooking(c, req)
	if err != nil {
		h.handleBookingError(c, err, "CreateBooking")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id := c.Param("id")
	idInt, err := strconv.Atoi(id)
	if err != nil {
		RespondError(c, http.StatusBadRequest, KindValidationFailed, "Invalid booking id", nil)
		return
	}
	booking, err := h.service.GetBookingByID(c, idInt)
	if err != nil {
		h.handleBookingError(c, err, "GetBooking")
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) GetBookingsByEmail(c *gin.Context) {
	email := c.Param("email")

	bookings, err := h.service.ListBookingsByEmail(c, email)
	if err != nil {
		h.handleBookingError(c, err, "GetBookingsByEmail")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(bookings),
		"data":  bookings,
	})
}

// Helper functions

func (h *BookingHandler) handleBookingError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))

	var capacityErr *apperrors.InsufficientCapacityError

	switch {
	case errors.As(err, &capacityErr):
		log.Warn("Insufficient capacity")
		RespondError(c, http.StatusConflict, KindConflict,
			fmt.Sprintf("Only %d spots available. Please reduce number of people.", capacityErr.Available),
			map[string]interface{}{"available": capacityErr.Available},
		)
	case errors.Is(err, apperrors.ErrSlotUnavailable):
		log.Warn("Slot unavailable")
		RespondError(c, http.StatusConflict, KindConflict, "This slot is no longer available", nil)
	case errors.Is(err, apperrors.ErrSlotNotFound):
		log.Warn("Slot not found")
		RespondError(c, http.StatusNotFound, KindNotFound, "Slot not found", nil)
	case errors.Is(err, apperrors.ErrExperienceNotFound):
		log.Warn("Experience not found")
		RespondError(c, http.StatusNotFound, KindNotFound, "Experience not found", nil)
	case errors.Is(err, apperrors.ErrBookingNotFound):
		log.Warn("Booking not found")
		RespondError(c, http.StatusNotFound, KindNotFound, "Booking not found", nil)
	default:
		log.Error("Unexpected error")
		RespondError(c, http.StatusInternalServerError, KindInternal, "Internal server error", nil)
	}
}
