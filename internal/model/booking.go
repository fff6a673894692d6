package model

import (
	"time"

	"github.com/google/uuid"
)

// Booking 預訂模型。成功預訂後寫入一次，不再修改。
type Booking struct {
	ID             int       `json:"id" db:"id"`
	BookingID      uuid.UUID `json:"booking_id" db:"booking_id"`
	ExperienceID   int       `json:"experience_id" db:"experience_id"`
	SlotID         int       `json:"slot_id" db:"slot_id"`
	UserName       string    `json:"user_name" db:"user_name"`
	UserEmail      string    `json:"user_email" db:"user_email"`
	UserPhone      *string   `json:"user_phone,omitempty" db:"user_phone"`
	NumberOfPeople int       `json:"number_of_people" db:"number_of_people"`
	TotalPrice     float64   `json:"total_price" db:"total_price"`
	PromoCode      *string   `json:"promo_code,omitempty" db:"promo_code"`
	DiscountAmount float64   `json:"discount_amount" db:"discount_amount"`
	FinalPrice     float64   `json:"final_price" db:"final_price"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// BookingDetail 依 email 查詢時的預訂資訊，帶出體驗與時段欄位
type BookingDetail struct {
	Booking
	ExperienceTitle string    `json:"experience_title" db:"experience_title"`
	Location        string    `json:"location" db:"location"`
	ImageURL        *string   `json:"image_url,omitempty" db:"image_url"`
	Date            time.Time `json:"date" db:"date"`
	TimeSlot        string    `json:"time_slot" db:"time_slot"`
}

// CreateBookingRequest 創建預訂請求
type CreateBookingRequest struct {
	ExperienceID   int     `json:"experience_id" binding:"required"`
	SlotID         int     `json:"slot_id" binding:"required"`
	UserName       string  `json:"user_name" binding:"required,min=2"`
	UserEmail      string  `json:"user_email" binding:"required,email"`
	UserPhone      *string `json:"user_phone" binding:"omitempty,e164"`
	NumberOfPeople int     `json:"number_of_people" binding:"required,min=1"`
	PromoCode      *string `json:"promo_code"`
}

// ValidatePromoRequest 驗證折扣碼請求
type ValidatePromoRequest struct {
	Code        string   `json:"code" binding:"required"`
	OrderAmount *float64 `json:"order_amount" binding:"required,gte=0"`
}
