package simpletxmanager

import (
	"context"
	"database/sql"

	"github.com/m04kA/SMC-TireService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TireService/pkg/txmanager"
)

// sqlDB адаптер *sql.DB под txmanager.Beginner (без метрик)
type sqlDB struct {
	db *sql.DB
}

func (s sqlDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return s.db.BeginTx(ctx, opts)
}

// NewTransactionManager создает менеджер транзакций поверх *sql.DB
// Используется, когда метрики выключены
func NewTransactionManager(db *sql.DB) *txmanager.TransactionManager {
	return txmanager.NewTransactionManager(sqlDB{db: db})
}
