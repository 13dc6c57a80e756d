// Package simpletxmanager менеджер транзакций поверх *sql.DB без метрик
// Логика повторов и изоляции целиком в pkg/txmanager
package simpletxmanager

import (
	"context"
	"database/sql"

	"github.com/tawanchai/BYD-TestDriveService/pkg/dbmetrics"
	"github.com/tawanchai/BYD-TestDriveService/pkg/txmanager"
)

// TransactionManager менеджер транзакций для *sql.DB
type TransactionManager struct {
	*txmanager.TransactionManager
}

// NewTransactionManager создает менеджер транзакций поверх обычного *sql.DB
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{
		TransactionManager: txmanager.NewTransactionManager(&plainBeginner{db: db}),
	}
}

// plainBeginner адаптирует *sql.DB к txmanager.TxBeginner
type plainBeginner struct {
	db *sql.DB
}

func (b *plainBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx, err := b.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return tx, nil
}
