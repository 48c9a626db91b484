package models

import "time"

// SpecialDate overrides the weekly hours of a shop (BarberID nil) or of a
// single barber for one calendar date.
type SpecialDate struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BarbershopID uint      `gorm:"index" json:"barbershop_id"`
	BarberID     *uint     `gorm:"index" json:"barber_id"`
	Date         time.Time `gorm:"type:date;index" json:"date"`

	IsHoliday bool   `json:"is_holiday"`
	OpenTime  string `gorm:"size:8" json:"open_time,omitempty"`
	CloseTime string `gorm:"size:8" json:"close_time,omitempty"`
	Note      string `gorm:"size:255" json:"note"`

	Breaks []SpecialDateBreak `gorm:"constraint:OnDelete:CASCADE;" json:"breaks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SpecialDateBreak struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	SpecialDateID uint   `gorm:"index" json:"special_date_id"`
	StartTime     string `gorm:"size:8" json:"start_time"`
	EndTime       string `gorm:"size:8" json:"end_time"`
}
