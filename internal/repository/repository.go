package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	TxManager TxManager
	SheetRows SheetRowRepository
}

func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		TxManager: NewTxManager(pool),
		SheetRows: NewSheetRowRepository(pool),
	}
}
