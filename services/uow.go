package services

import (
	"context"

	"gorm.io/gorm"
)

// UnitOfWork runs a request's writes inside one transaction. The transaction
// is committed only when fn returns nil and is rolled back on any error or
// panic.
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Do executes fn inside a transaction bound to ctx.
func (u *UnitOfWork) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	err := u.db.WithContext(ctx).Transaction(fn)
	return classify(err, "transaction")
}

// Read returns a session for non-transactional reads bound to ctx.
func (u *UnitOfWork) Read(ctx context.Context) *gorm.DB {
	return u.db.WithContext(ctx)
}

// Ping runs a trivial query against the store.
func (u *UnitOfWork) Ping(ctx context.Context) error {
	return u.db.WithContext(ctx).Exec("SELECT 1").Error
}
