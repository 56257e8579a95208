package repository

import (
	"context"

	"app/internal/domain/model"
)

// カート行と現在の商品価格のJOIN結果。
// UnitPriceは products.price の現在値（注文確定時にここからスナップショットする）。
type CartEntryWithProduct struct {
	EntryID     int64
	ProductID   int64
	ProductName string
	Quantity    int64
	UnitPrice   float64
}

type CartEntryRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.CartEntry, error)
	ListWithProductByUserID(ctx context.Context, userID int64) ([]CartEntryWithProduct, error)

	// (user, product) の行が有れば数量加算、無ければ作成。1トランザクションで行う。
	UpsertEntry(ctx context.Context, userID int64, productID int64, addQty int64) (model.CartEntry, error)
	// 数量を上書き（加算しない）
	OverwriteQuantity(ctx context.Context, entryID int64, qty int64) error
	// (user, product) 指定で上書き、無ければ作成。レガシーの名前ベース経路用。
	OverwriteByUserAndProduct(ctx context.Context, userID int64, productID int64, qty int64) (model.CartEntry, error)

	FindByID(ctx context.Context, entryID int64) (model.CartEntry, error)
	DeleteByID(ctx context.Context, entryID int64) error
	DeleteByUserID(ctx context.Context, userID int64) error
	// 全ユーザーの全行を消す。戻り値は削除行数。
	DeleteAll(ctx context.Context) (int64, error)
}
