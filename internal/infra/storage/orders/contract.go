package orders

import (
	"context"
	"database/sql"
)

// DBExecutor интерфейс исполнителя запросов.
// Поддерживает *sql.DB и *sql.Tx.
type DBExecutor interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}
