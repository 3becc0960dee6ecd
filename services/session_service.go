package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yeremiapane/daie-pos/models"
	"github.com/yeremiapane/daie-pos/utils"
	"gorm.io/gorm"
)

// SessionService groups orders into dining sessions.
//
// Closing a session refuses while any member order is still open or in
// progress; once every member is terminal, paid members are closed together
// with the session.
type SessionService struct {
	uow *UnitOfWork
}

func NewSessionService(uow *UnitOfWork) *SessionService {
	return &SessionService{uow: uow}
}

func loadSession(tx *gorm.DB, id uint) (*models.Session, error) {
	var session models.Session
	if err := tx.First(&session, id).Error; err != nil {
		return nil, classify(err, "session")
	}
	return &session, nil
}

func saveSession(tx *gorm.DB, session *models.Session, changes map[string]interface{}) error {
	changes["version"] = session.Version + 1
	res := tx.Model(&models.Session{}).
		Where("id = ? AND version = ?", session.ID, session.Version).
		Updates(changes)
	if res.Error != nil {
		return classify(res.Error, "session")
	}
	if res.RowsAffected == 0 {
		return conflict("session %d was modified concurrently", session.ID)
	}
	if err := tx.First(session, session.ID).Error; err != nil {
		return classify(err, "session")
	}
	return nil
}

// Create opens an empty session. Only open sessions can be created.
func (s *SessionService) Create(ctx context.Context, status string) (*models.Session, error) {
	if status == "" {
		status = models.SessionOpen
	}
	if status != models.SessionOpen {
		return nil, invalid("a new session must be %s", models.SessionOpen)
	}
	session := models.Session{Status: status, Version: 1}
	if err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		return classify(tx.Create(&session).Error, "session")
	}); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionService) Get(ctx context.Context, id uint) (*models.Session, error) {
	return loadSession(s.uow.Read(ctx), id)
}

func (s *SessionService) List(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	if err := s.uow.Read(ctx).Order("id").Find(&sessions).Error; err != nil {
		return nil, classify(err, "session")
	}
	return sessions, nil
}

// Attach links an order to an open session. An order already linked to any
// session is a conflict.
func (s *SessionService) Attach(ctx context.Context, sessionID, orderID uint) (*models.SessionOrder, error) {
	link := models.SessionOrder{SessionID: sessionID, OrderID: orderID}
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		session, err := loadSession(tx, sessionID)
		if err != nil {
			return err
		}
		if session.Status == models.SessionClosed {
			return invalidState("session %d is closed", session.ID)
		}
		if _, err := loadOrder(tx, orderID); err != nil {
			return err
		}

		var existing models.SessionOrder
		err = tx.Where("orden_id = ?", orderID).Limit(1).Find(&existing).Error
		if err != nil {
			return classify(err, "session link")
		}
		if existing.OrderID != 0 {
			if existing.SessionID == sessionID {
				return conflict("order %d is already in session %d", orderID, sessionID)
			}
			return conflict("order %d belongs to session %d", orderID, existing.SessionID)
		}

		if err := tx.Create(&link).Error; err != nil {
			return classify(err, "session link")
		}
		// Bumping the session version makes a concurrent Close lose.
		return saveSession(tx, session, map[string]interface{}{})
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// Detach removes the link only; the order and the session are kept.
func (s *SessionService) Detach(ctx context.Context, sessionID, orderID uint) error {
	return s.uow.Do(ctx, func(tx *gorm.DB) error {
		session, err := loadSession(tx, sessionID)
		if err != nil {
			return err
		}
		if session.Status == models.SessionClosed {
			return invalidState("session %d is closed", session.ID)
		}
		res := tx.Where("sesion_id = ? AND orden_id = ?", sessionID, orderID).Delete(&models.SessionOrder{})
		if res.Error != nil {
			return classify(res.Error, "session link")
		}
		if res.RowsAffected == 0 {
			return notFound("order %d is not in session %d", orderID, sessionID)
		}
		return nil
	})
}

// OrdersOf returns the ids of the orders linked to a session.
func (s *SessionService) OrdersOf(ctx context.Context, sessionID uint) ([]uint, error) {
	db := s.uow.Read(ctx)
	if _, err := loadSession(db, sessionID); err != nil {
		return nil, err
	}
	return memberIDs(db, sessionID)
}

func memberIDs(tx *gorm.DB, sessionID uint) ([]uint, error) {
	ids := []uint{}
	err := tx.Model(&models.SessionOrder{}).
		Where("sesion_id = ?", sessionID).
		Order("orden_id").
		Pluck("orden_id", &ids).Error
	if err != nil {
		return nil, classify(err, "session link")
	}
	return ids, nil
}

func members(tx *gorm.DB, sessionID uint) ([]models.Order, error) {
	ids, err := memberIDs(tx, sessionID)
	if err != nil {
		return nil, err
	}
	orders := []models.Order{}
	if len(ids) == 0 {
		return orders, nil
	}
	if err := tx.Where("id IN ?", ids).Order("id").Find(&orders).Error; err != nil {
		return nil, classify(err, "order")
	}
	return orders, nil
}

// Close closes the session and its paid member orders. It fails with
// InvalidState while any member order is not yet terminal.
func (s *SessionService) Close(ctx context.Context, id uint) (*models.Session, error) {
	var session *models.Session
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		var err error
		session, err = loadSession(tx, id)
		if err != nil {
			return err
		}
		if session.Status == models.SessionClosed {
			return invalidState("session %d is already closed", session.ID)
		}

		orders, err := members(tx, session.ID)
		if err != nil {
			return err
		}
		var pending []string
		for _, o := range orders {
			if !models.IsTerminal(o.Status) {
				pending = append(pending, fmt.Sprintf("%d", o.ID))
			}
		}
		if len(pending) > 0 {
			return invalidState("session %d has unsettled orders: %s", session.ID, strings.Join(pending, ", "))
		}

		for i := range orders {
			if orders[i].Status != models.OrderPaid {
				continue
			}
			if err := saveOrder(tx, &orders[i], map[string]interface{}{"estado": models.OrderClosed}); err != nil {
				return err
			}
		}
		return saveSession(tx, session, map[string]interface{}{"estado": models.SessionClosed})
	})
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.WithField("session_id", session.ID).Info("session closed")
	return session, nil
}

// SetStatus is the status-only update of a session. Closing goes through
// Close; a closed session cannot be reopened.
func (s *SessionService) SetStatus(ctx context.Context, id uint, status string) (*models.Session, error) {
	switch status {
	case models.SessionClosed:
		return s.Close(ctx, id)
	case models.SessionOpen:
		session, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if session.Status == models.SessionClosed {
			return nil, invalidState("session %d is closed and cannot be reopened", session.ID)
		}
		return session, nil
	}
	return nil, invalid("unknown session status %q", status)
}

// Delete removes the session and its order links, never the orders.
func (s *SessionService) Delete(ctx context.Context, id uint) error {
	return s.uow.Do(ctx, func(tx *gorm.DB) error {
		session, err := loadSession(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("sesion_id = ?", session.ID).Delete(&models.SessionOrder{}).Error; err != nil {
			return classify(err, "session link")
		}
		if err := tx.Delete(&models.Session{}, session.ID).Error; err != nil {
			return classify(err, "session")
		}
		return nil
	})
}
