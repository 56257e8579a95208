package repository

import (
	"context"

	"app/internal/domain/model"
)

// 全注文一覧用のJOIN結果（注文＋ユーザー＋商品＋明細）
type OrderDetailRow struct {
	OrderID     int64
	Date        string
	TotalPrice  float64
	UserID      int64
	UserName    string
	UserEmail   string
	UserPhone   string
	UserAddress string
	ProductName string
	Quantity    int64
	UnitPrice   float64
}

// 単一注文の明細表示用
type OrderLineRow struct {
	ProductName string
	Quantity    int64
	UnitPrice   float64
}

type OrderLineRepository interface {
	CreateBulk(ctx context.Context, orderID int64, lines []model.OrderLine) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error)
	DeleteByOrderID(ctx context.Context, orderID int64) error

	ListAllDetails(ctx context.Context) ([]OrderDetailRow, error)
	ListDetailsByOrderID(ctx context.Context, orderID int64) ([]OrderLineRow, error)
}
