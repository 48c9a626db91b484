package models

import "time"

type Barber struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	BarbershopID uint       `gorm:"index" json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Email  string `gorm:"size:100" json:"email"`
	Phone  string `gorm:"size:20" json:"phone"`
	Role   string `gorm:"size:20;default:'barber'" json:"role"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
