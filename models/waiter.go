package models

import "time"

type Waiter struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:nombre;type:varchar(100);not null" json:"nombre"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Waiter) TableName() string {
	return "mesero"
}
