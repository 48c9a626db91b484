package models

import "time"

// Weekly template of a barber. Times are "HH:MM" strings in the shop timezone.
type WorkingHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index:idx_working_hours_barber_weekday,unique" json:"barber_id"`

	Weekday int `gorm:"index:idx_working_hours_barber_weekday,unique" json:"weekday"`

	IsWorking  bool   `json:"is_working"`
	StartTime  string `gorm:"size:8" json:"start_time,omitempty"`
	EndTime    string `gorm:"size:8" json:"end_time,omitempty"`
	BreakStart string `gorm:"size:8" json:"break_start,omitempty"`
	BreakEnd   string `gorm:"size:8" json:"break_end,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
