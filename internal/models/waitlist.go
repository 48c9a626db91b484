package models

import "time"

const (
	WaitlistWaiting   = "waiting"
	WaitlistNotified  = "notified"
	WaitlistFulfilled = "fulfilled"
)

type WaitlistEntry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BarbershopID uint      `gorm:"index" json:"barbershop_id"`
	BarberID     uint      `gorm:"index:idx_waitlist_barber_date" json:"barber_id"`
	ClientID     uint      `json:"client_id"`
	Client       Client    `gorm:"constraint:OnDelete:CASCADE;" json:"client"`
	Date         time.Time `gorm:"type:date;index:idx_waitlist_barber_date" json:"date"`
	Status       string    `gorm:"size:20;default:'waiting'" json:"status"`

	NotifiedAt *time.Time `json:"notified_at"`
	CreatedAt  time.Time  `json:"created_at"`
}
