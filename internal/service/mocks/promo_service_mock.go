package mocks

import (
	"context"

	"bookit/internal/model"

	"github.com/stretchr/testify/mock"
)

type PromoServiceMock struct {
	mock.Mock
}

func NewPromoServiceMock() *PromoServiceMock {
	return &PromoServiceMock{}
}

func (m *PromoServiceMock) ValidatePromo(ctx context.Context, code string, orderAmount float64) (*model.PromoValidation, error) {
	args := m.Called(ctx, code, orderAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PromoValidation), args.Error(1)
}
