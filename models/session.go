package models

import "time"

// Session statuses.
const (
	SessionOpen   = "open"
	SessionClosed = "closed"
)

// Session groups the orders of a single dining visit.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Status    string    `gorm:"column:estado;type:varchar(20);not null" json:"estado"`
	Version   uint      `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `gorm:"column:fecha;not null" json:"fecha"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Session) TableName() string {
	return "sesion"
}

// SessionOrder links an order to a session. An order appears in at most one
// link, enforced by the unique index on orden_id.
type SessionOrder struct {
	SessionID uint `gorm:"column:sesion_id;primaryKey;autoIncrement:false" json:"sesion_id"`
	OrderID   uint `gorm:"column:orden_id;primaryKey;autoIncrement:false;uniqueIndex" json:"orden_id"`
}

func (SessionOrder) TableName() string {
	return "sesion_ordenes"
}
