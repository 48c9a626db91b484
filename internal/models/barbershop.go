package models

import "time"

type Barbershop struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone    string `gorm:"size:20" json:"phone"`
	Address  string `gorm:"size:255" json:"address"`
	Timezone string `gorm:"size:64" json:"timezone"`

	// booking rules
	MinNoticeHours      int    `gorm:"default:2" json:"min_notice_hours"`
	MaxAdvanceDays      int    `gorm:"default:30" json:"max_advance_days"`
	SameDayCutoff       string `gorm:"size:5" json:"same_day_cutoff"`
	SlotIntervalMinutes int    `gorm:"default:15" json:"slot_interval_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
