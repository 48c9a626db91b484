package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint       `gorm:"index" json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	BarberID uint   `gorm:"index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	StartAt time.Time `gorm:"index" json:"start_at"`
	EndAt   time.Time `json:"end_at"`

	Status           string `gorm:"size:20;default:'pending'" json:"status"`
	ConfirmationCode string `gorm:"size:6;uniqueIndex;not null" json:"confirmation_code"`

	TotalPrice           float64 `json:"total_price"`
	TotalDurationMinutes int     `json:"total_duration_minutes"`

	Notes              string     `gorm:"size:255" json:"notes"`
	ConfirmedAt        *time.Time `json:"confirmed_at"`
	CompletedAt        *time.Time `json:"completed_at"`
	CancelledAt        *time.Time `json:"cancelled_at"`
	CancelledBy        *uint      `json:"cancelled_by"`
	CancellationReason string     `gorm:"size:255" json:"cancellation_reason"`
	StatusNotes        string     `gorm:"size:255" json:"status_notes"`

	Services []AppointmentService `gorm:"constraint:OnDelete:CASCADE;" json:"services"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentService snapshots the service price and duration at booking time.
type AppointmentService struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	AppointmentID   uint    `gorm:"index" json:"appointment_id"`
	ServiceID       uint    `json:"service_id"`
	ServiceName     string  `gorm:"size:100" json:"service_name"`
	OrderIndex      int     `json:"order_index"`
	UnitPrice       float64 `json:"unit_price"`
	DurationMinutes int     `json:"duration_minutes"`
}
