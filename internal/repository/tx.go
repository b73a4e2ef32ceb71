package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxManager scopes a function to a single database transaction. A nil
// return from the callback commits; any error (or panic) rolls the whole
// transaction back, so no early-return path can leak partial state. The
// context is attached to the transaction, so a cancelled request aborts
// and rolls back an in-flight transaction.
type TxManager interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
