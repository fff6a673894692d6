package notifier

import (
	"context"

	"bookit/internal/model"
	"bookit/pkg/logger"

	"go.uber.org/zap"
)

// Notifier 是通知發送的介面，方便之後換成 Email/SMS 等實作
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, booking *model.Booking) error
}

// LogNotifier 只記錄 log，不實際寄送
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) SendBookingConfirmation(_ context.Context, booking *model.Booking) error {
	logger.WithComponent("notifier").Info("booking confirmation",
		zap.String("booking_id", booking.BookingID.String()),
		zap.String("user_email", booking.UserEmail),
		zap.Int("experience_id", booking.ExperienceID),
		zap.Int("slot_id", booking.SlotID),
		zap.Int("number_of_people", booking.NumberOfPeople),
		zap.Float64("final_price", booking.FinalPrice),
	)
	return nil
}
