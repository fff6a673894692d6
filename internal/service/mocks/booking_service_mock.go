package mocks

import (
	"context"

	"bookit/internal/model"

	"github.com/stretchr/testify/mock"
)

type BookingServiceMock struct {
	mock.Mock
}

func NewBookingServiceMock() *BookingServiceMock {
	return &BookingServiceMock{}
}

func (m *BookingServiceMock) CreateBooking(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingServiceMock) GetBookingByID(ctx context.Context, id int) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingServiceMock) ListBookingsByEmail(ctx context.Context, email string) ([]*model.BookingDetail, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.BookingDetail), args.Error(1)
}
