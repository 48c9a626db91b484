package models

import "time"

// Break is an ad-hoc pause a barber blocks on a single date.
type Break struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BarbershopID uint      `gorm:"index" json:"barbershop_id"`
	BarberID     uint      `gorm:"index:idx_breaks_barber_date;index:idx_breaks_barber_span" json:"barber_id"`
	Date         time.Time `gorm:"type:date;index:idx_breaks_barber_date" json:"date"`
	StartTime    string    `gorm:"size:8" json:"start_time"`
	EndTime      string    `gorm:"size:8" json:"end_time"`
	Reason       string    `gorm:"size:255" json:"reason"`

	// StartAt/EndAt are the same window as instants, so bookings and breaks
	// can be checked against each other in one query.
	StartAt time.Time `gorm:"index:idx_breaks_barber_span" json:"start_at"`
	EndAt   time.Time `gorm:"index:idx_breaks_barber_span" json:"end_at"`

	CreatedAt time.Time `json:"created_at"`
}
