package models

import "time"

// Table states.
const (
	TableFree     = "free"
	TableOccupied = "occupied"
	TableReserved = "reserved"
)

// Table is a physical table on the floor. CurrentOrderID is set while the
// table is occupied by an order and cleared when it is released.
type Table struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Number         int       `gorm:"column:numero;not null" json:"numero"`
	Capacity       int       `gorm:"column:capacidad;not null" json:"capacidad"`
	State          string    `gorm:"column:estado;type:varchar(20);not null;default:'free'" json:"estado"`
	CurrentOrderID *uint     `gorm:"column:orden_actual_id;index" json:"orden_actual_id"`
	Version        uint      `gorm:"not null;default:1" json:"version"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func (Table) TableName() string {
	return "mesas"
}

// ValidTableState reports whether s is one of the known table states.
func ValidTableState(s string) bool {
	switch s {
	case TableFree, TableOccupied, TableReserved:
		return true
	}
	return false
}
