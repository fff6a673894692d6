package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrExperienceNotFound   = errors.New("experience not found")
	ErrSlotNotFound         = errors.New("slot not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrPromoNotFound        = errors.New("promo code not found")
	ErrSlotUnavailable      = errors.New("slot unavailable")
	ErrInsufficientCapacity = errors.New("insufficient capacity")
	ErrBelowMinOrderAmount  = errors.New("order amount below promo minimum")
	ErrCacheMiss            = errors.New("cache miss")
)

// InsufficientCapacityError carries the exact remaining capacity so the
// caller can report it. Matches ErrInsufficientCapacity via errors.Is.
type InsufficientCapacityError struct {
	Available int
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("insufficient capacity: only %d spots available", e.Available)
}

func (e *InsufficientCapacityError) Is(target error) bool {
	return target == ErrInsufficientCapacity
}

// MinOrderAmountError carries the minimum order amount a promo code
// requires. Matches ErrBelowMinOrderAmount via errors.Is.
type MinOrderAmountError struct {
	Minimum float64
}

func (e *MinOrderAmountError) Error() string {
	return fmt.Sprintf("minimum order amount of %.2f required", e.Minimum)
}

func (e *MinOrderAmountError) Is(target error) bool {
	return target == ErrBelowMinOrderAmount
}
