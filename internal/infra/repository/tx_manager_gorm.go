package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders      repo.OrderRepository
	orderLines  repo.OrderLineRepository
	cartEntries repo.CartEntryRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository          { return r.orders }
func (r *txReposGorm) OrderLines() repo.OrderLineRepository  { return r.orderLines }
func (r *txReposGorm) CartEntries() repo.CartEntryRepository { return r.cartEntries }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// fnがerrorを返したら注文・明細・カートの変更を全部ロールバックする。
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:      NewOrderGormRepository(tx),
			orderLines:  NewOrderLineGormRepository(tx),
			cartEntries: NewCartGormRepository(tx),
		}
		return fn(r)
	})
}
