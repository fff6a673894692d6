package service

import (
	"context"
	"time"

	"bookit/internal/model"
	"bookit/internal/repository"
	apperrors "bookit/pkg/app_errors"
)

type PromoService interface {
	// ValidatePromo 純預覽：同樣的適用規則與折扣公式，但不扣 used_count
	ValidatePromo(ctx context.Context, code string, orderAmount float64) (*model.PromoValidation, error)
}

type PromoServiceImpl struct {
	repo repository.PromoRepository
}

func NewPromoService(repo repository.PromoRepository) PromoService {
	return &PromoServiceImpl{repo: repo}
}

func (s *PromoServiceImpl) ValidatePromo(ctx context.Context, code string, orderAmount float64) (*model.PromoValidation, error) {
	promo, err := s.repo.FindActiveByCode(ctx, code, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if !promo.MeetsMinOrder(orderAmount) {
		return nil, &apperrors.MinOrderAmountError{Minimum: promo.MinOrderAmount}
	}

	discountAmount := promo.DiscountFor(orderAmount)

	return &model.PromoValidation{
		Promo:          promo,
		OrderAmount:    orderAmount,
		DiscountAmount: discountAmount,
		FinalAmount:    orderAmount - discountAmount,
	}, nil
}
