package services

import (
	"context"

	"github.com/yeremiapane/daie-pos/models"
	"gorm.io/gorm"
)

// TableService exposes the tracker's administrative override as a unit of
// work of its own.
type TableService struct {
	uow     *UnitOfWork
	tracker *TableTracker
}

func NewTableService(uow *UnitOfWork, tracker *TableTracker) *TableService {
	return &TableService{uow: uow, tracker: tracker}
}

func (s *TableService) SetState(ctx context.Context, id uint, state string) (*models.Table, error) {
	var table *models.Table
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		var err error
		table, err = s.tracker.SetState(tx, id, state)
		return err
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}
