package model

import "time"

// SlotStatus 時段狀態類型
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusSoldOut   SlotStatus = "sold_out"
)

// IsValid 驗證狀態是否有效
func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotStatusAvailable, SlotStatusSoldOut:
		return true
	}
	return false
}

// Slot 時段模型：某個體驗在特定日期、特定時間的可預訂場次
type Slot struct {
	ID                int        `json:"id" db:"id"`
	ExperienceID      int        `json:"experience_id" db:"experience_id"`
	Date              time.Time  `json:"date" db:"date"`
	TimeSlot          string     `json:"time_slot" db:"time_slot"`
	TotalCapacity     int        `json:"total_capacity" db:"total_capacity"`
	AvailableCapacity int        `json:"available_capacity" db:"available_capacity"`
	Status            SlotStatus `json:"status" db:"status"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// IsAvailable 檢查時段是否可預訂
func (s *Slot) IsAvailable() bool {
	return s.Status == SlotStatusAvailable && s.AvailableCapacity > 0
}

// DateKey 回傳分組用的日期字串 (YYYY-MM-DD)
func (s *Slot) DateKey() string {
	return s.Date.Format("2006-01-02")
}

// SlotGroup 同一天的時段分組，依日期排序後回傳給前端
type SlotGroup struct {
	Date  string  `json:"date"`
	Slots []*Slot `json:"slots"`
}

// GroupSlotsByDate 將時段依日期分組。輸入必須已按 date, time_slot 排序，
// 分組結果保持原有順序。
func GroupSlotsByDate(slots []*Slot) []SlotGroup {
	groups := make([]SlotGroup, 0)
	for _, slot := range slots {
		key := slot.DateKey()
		if n := len(groups); n > 0 && groups[n-1].Date == key {
			groups[n-1].Slots = append(groups[n-1].Slots, slot)
			continue
		}
		groups = append(groups, SlotGroup{Date: key, Slots: []*Slot{slot}})
	}
	return groups
}
