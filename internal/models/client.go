package models

import "time"

// Customer profile tied to a barbershop. Guests are created at booking time
// and deduplicated by phone.
type Client struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"uniqueIndex:idx_clients_shop_phone" json:"barbershop_id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Phone   string `gorm:"size:20;uniqueIndex:idx_clients_shop_phone" json:"phone"`
	Email   string `gorm:"size:100" json:"email"`
	IsGuest bool   `gorm:"default:false" json:"is_guest"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
