package models

import "time"

type Service struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index" json:"barbershop_id"`

	Name            string  `gorm:"size:100;not null" json:"name"`
	Description     string  `gorm:"size:255" json:"description"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	IsActive        bool    `gorm:"default:true" json:"is_active"`

	Category string `gorm:"size:50" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
