package models

import "time"

type ShopHours struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index:idx_shop_hours_shop_weekday,unique" json:"barbershop_id"`

	Weekday   int    `gorm:"index:idx_shop_hours_shop_weekday,unique" json:"weekday"`
	IsClosed  bool   `json:"is_closed"`
	OpenTime  string `gorm:"size:8" json:"open_time,omitempty"`
	CloseTime string `gorm:"size:8" json:"close_time,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
