package model

import (
	"fmt"
	"time"
)

// DiscountType 折扣類型
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// IsValid 驗證折扣類型是否有效
func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountTypePercentage, DiscountTypeFixed:
		return true
	}
	return false
}

// PromoCode 折扣碼模型。code 統一以大寫儲存，比對時不分大小寫。
type PromoCode struct {
	ID                int          `json:"id" db:"id"`
	Code              string       `json:"code" db:"code"`
	Description       *string      `json:"description,omitempty" db:"description"`
	DiscountType      DiscountType `json:"discount_type" db:"discount_type"`
	DiscountValue     float64      `json:"discount_value" db:"discount_value"`
	MaxDiscountAmount *float64     `json:"max_discount_amount,omitempty" db:"max_discount_amount"`
	MinOrderAmount    float64      `json:"min_order_amount" db:"min_order_amount"`
	ValidFrom         time.Time    `json:"valid_from" db:"valid_from"`
	ValidUntil        time.Time    `json:"valid_until" db:"valid_until"`
	UsageLimit        *int         `json:"usage_limit,omitempty" db:"usage_limit"`
	UsedCount         int          `json:"used_count" db:"used_count"`
	IsActive          bool         `json:"is_active" db:"is_active"`
	CreatedAt         time.Time    `json:"created_at" db:"created_at"`
}

// IsWithinWindow 檢查折扣碼在時間 now 是否在有效期內
func (p *PromoCode) IsWithinWindow(now time.Time) bool {
	return !now.Before(p.ValidFrom) && !now.After(p.ValidUntil)
}

// HasRemainingUsage 檢查使用次數是否未達上限
func (p *PromoCode) HasRemainingUsage() bool {
	return p.UsageLimit == nil || p.UsedCount < *p.UsageLimit
}

// MeetsMinOrder 檢查訂單金額是否達到最低消費門檻
func (p *PromoCode) MeetsMinOrder(orderAmount float64) bool {
	return orderAmount >= p.MinOrderAmount
}

// IsApplicable 檢查折扣碼在時間 now、訂單金額 orderAmount 下是否可用
func (p *PromoCode) IsApplicable(now time.Time, orderAmount float64) bool {
	return p.IsActive &&
		p.IsWithinWindow(now) &&
		p.HasRemainingUsage() &&
		p.MeetsMinOrder(orderAmount)
}

// DiscountFor 計算訂單金額的折扣額。百分比折扣受 max_discount_amount 上限限制。
// 預訂時套用與獨立驗證共用此函數，差別只在前者會提交 used_count。
func (p *PromoCode) DiscountFor(orderAmount float64) float64 {
	switch p.DiscountType {
	case DiscountTypePercentage:
		discount := orderAmount * p.DiscountValue / 100
		if p.MaxDiscountAmount != nil && discount > *p.MaxDiscountAmount {
			discount = *p.MaxDiscountAmount
		}
		return discount
	case DiscountTypeFixed:
		return p.DiscountValue
	}
	return 0
}

// PromoValidation 折扣碼驗證結果（純預覽，不扣用量）
type PromoValidation struct {
	Promo          *PromoCode
	OrderAmount    float64
	DiscountAmount float64
	FinalAmount    float64
}

// PromoValidationResponse 折扣碼驗證響應，金額欄位格式化為兩位小數
type PromoValidationResponse struct {
	Code           string  `json:"code"`
	Description    *string `json:"description,omitempty"`
	DiscountType   string  `json:"discount_type"`
	DiscountValue  float64 `json:"discount_value"`
	DiscountAmount string  `json:"discount_amount"`
	OriginalAmount string  `json:"original_amount"`
	FinalAmount    string  `json:"final_amount"`
	Savings        string  `json:"savings"`
}

// Response 組裝對外響應
func (v *PromoValidation) Response() PromoValidationResponse {
	return PromoValidationResponse{
		Code:           v.Promo.Code,
		Description:    v.Promo.Description,
		DiscountType:   string(v.Promo.DiscountType),
		DiscountValue:  v.Promo.DiscountValue,
		DiscountAmount: formatAmount(v.DiscountAmount),
		OriginalAmount: formatAmount(v.OrderAmount),
		FinalAmount:    formatAmount(v.FinalAmount),
		Savings:        formatAmount(v.DiscountAmount),
	}
}

func formatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
