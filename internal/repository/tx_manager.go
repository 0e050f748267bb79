package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxManager выполняет методы репозиториев в одной транзакции.
// Импорт диапазона (удаление строк, COPY новых, запись в sheet_imports) идет
// одной транзакцией: читатели видят либо прежнюю загрузку целиком, либо новую.
type TxManager interface {
	// WithTx при ошибке fn откатывает транзакцию, иначе коммитит.
	// Вложенный вызов переиспользует транзакцию из ctx.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	// WithLockedTx как WithTx, но сначала берет advisory lock по key до конца
	// транзакции. Параллельные импорты одного диапазона выполняются по очереди,
	// иначе второй DELETE не видит строк первого и COPY падает на первичном ключе.
	WithLockedTx(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// DBTX общее для pgxpool.Pool и pgx.Tx
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

type txManager struct {
	pool *pgxpool.Pool
}

func NewTxManager(pool *pgxpool.Pool) TxManager {
	return &txManager{pool: pool}
}

type txKey struct{}

func (m *txManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return err
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}

func (m *txManager) WithLockedTx(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	return m.WithTx(ctx, func(ctx context.Context) error {
		if _, err := GetTxOrPool(ctx, m.pool).Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
			return err
		}
		return fn(ctx)
	})
}

// GetTxOrPool транзакция из ctx, если есть, иначе пул
func GetTxOrPool(ctx context.Context, pool *pgxpool.Pool) DBTX {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}
