package models

import "time"

const (
	TimeOffPending   = "pending"
	TimeOffApproved  = "approved"
	TimeOffRejected  = "rejected"
	TimeOffCancelled = "cancelled"
)

type TimeOff struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index" json:"barbershop_id"`
	BarberID     uint `gorm:"index" json:"barber_id"`

	// inclusive
	StartDate time.Time `gorm:"type:date" json:"start_date"`
	EndDate   time.Time `gorm:"type:date" json:"end_date"`

	Status     string     `gorm:"size:20;default:'pending';index" json:"status"`
	Reason     string     `gorm:"size:255" json:"reason"`
	ApprovedBy *uint      `json:"approved_by"`
	ApprovedAt *time.Time `json:"approved_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
