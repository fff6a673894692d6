package model

import "time"

type Experience struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	Location    string    `json:"location" db:"location"`
	Price       float64   `json:"price" db:"price"`
	Duration    string    `json:"duration" db:"duration"`
	ImageURL    *string   `json:"image_url,omitempty" db:"image_url"`
	Category    string    `json:"category" db:"category"`
	Rating      float64   `json:"rating" db:"rating"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ExperienceDetail 是體驗詳情頁的讀取結果：體驗本身加上可預訂的時段。
type ExperienceDetail struct {
	Experience *Experience `json:"experience"`
	Slots      []SlotGroup `json:"slots"`
	TotalSlots int         `json:"total_slots"`
}
