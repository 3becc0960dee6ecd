package models

import "time"

type Client struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"column:nombre;type:varchar(100);not null" json:"nombre"`
	ExternalID string    `gorm:"column:cedula;type:varchar(20);not null" json:"cedula"`
	Phone      *string   `gorm:"column:telefono;type:varchar(20)" json:"telefono"`
	OrderCount int       `gorm:"column:nro_ordenes;not null;default:0" json:"nro_ordenes"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Client) TableName() string {
	return "cliente"
}
