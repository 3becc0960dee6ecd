package models

import "time"

// Rating scale bounds.
const (
	MinRatingScore = 1
	MaxRatingScore = 5
)

// Rating is an append-only post-visit score left by a client.
type Rating struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Description *string   `gorm:"column:descripcion;type:text" json:"descripcion"`
	Score       int       `gorm:"column:calificacion;not null" json:"calificacion"`
	ClientID    uint      `gorm:"column:cliente_id;not null;index" json:"cliente_id"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (Rating) TableName() string {
	return "valoraciones"
}
