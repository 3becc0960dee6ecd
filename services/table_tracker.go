package services

import (
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/daie-pos/models"
	"github.com/yeremiapane/daie-pos/utils"
	"gorm.io/gorm"
)

// TableTracker owns table occupancy and the legality of its transitions.
// Every write is a conditional update on the row version, so a concurrent
// writer that read the same version loses with a conflict.
type TableTracker struct{}

func NewTableTracker() *TableTracker {
	return &TableTracker{}
}

func (t *TableTracker) Get(tx *gorm.DB, id uint) (*models.Table, error) {
	var table models.Table
	if err := tx.First(&table, id).Error; err != nil {
		return nil, classify(err, "table")
	}
	return &table, nil
}

// Assign seats orderID at the table. Free and Reserved tables can be
// assigned; an Occupied table cannot.
func (t *TableTracker) Assign(tx *gorm.DB, tableID, orderID uint) (*models.Table, error) {
	table, err := t.Get(tx, tableID)
	if err != nil {
		return nil, err
	}
	if table.State == models.TableOccupied {
		if table.CurrentOrderID != nil {
			return nil, conflict("table %d is occupied by order %d", table.ID, *table.CurrentOrderID)
		}
		return nil, conflict("table %d is occupied", table.ID)
	}
	if err := t.transition(tx, table, models.TableOccupied, &orderID); err != nil {
		return nil, err
	}
	utils.InfoLogger.WithFields(logrus.Fields{"table_id": table.ID, "order_id": orderID}).Info("table assigned")
	return table, nil
}

// Release frees an Occupied table and drops its order binding.
func (t *TableTracker) Release(tx *gorm.DB, tableID uint) (*models.Table, error) {
	table, err := t.Get(tx, tableID)
	if err != nil {
		return nil, err
	}
	if table.State != models.TableOccupied {
		return nil, invalidState("table %d is %s, not occupied", table.ID, table.State)
	}
	if err := t.transition(tx, table, models.TableFree, nil); err != nil {
		return nil, err
	}
	utils.InfoLogger.WithField("table_id", table.ID).Info("table released")
	return table, nil
}

// releaseIfHeld frees the table only when it is still bound to orderID.
func (t *TableTracker) releaseIfHeld(tx *gorm.DB, tableID, orderID uint) error {
	table, err := t.Get(tx, tableID)
	if err != nil {
		return err
	}
	if table.State != models.TableOccupied || table.CurrentOrderID == nil || *table.CurrentOrderID != orderID {
		return nil
	}
	_, err = t.Release(tx, tableID)
	return err
}

// SetState is the front-of-house override. Any state may be set; the order
// binding survives only while the table stays Occupied.
func (t *TableTracker) SetState(tx *gorm.DB, tableID uint, state string) (*models.Table, error) {
	if !models.ValidTableState(state) {
		return nil, invalid("unknown table state %q", state)
	}
	table, err := t.Get(tx, tableID)
	if err != nil {
		return nil, err
	}
	var binding *uint
	if state == models.TableOccupied {
		binding = table.CurrentOrderID
	}
	if err := t.transition(tx, table, state, binding); err != nil {
		return nil, err
	}
	return table, nil
}

func (t *TableTracker) transition(tx *gorm.DB, table *models.Table, state string, orderID *uint) error {
	res := tx.Model(&models.Table{}).
		Where("id = ? AND version = ?", table.ID, table.Version).
		Updates(map[string]interface{}{
			"estado":          state,
			"orden_actual_id": orderID,
			"version":         table.Version + 1,
		})
	if res.Error != nil {
		return classify(res.Error, "table")
	}
	if res.RowsAffected == 0 {
		return conflict("table %d was modified concurrently", table.ID)
	}
	table.State = state
	table.CurrentOrderID = orderID
	table.Version++
	return nil
}
