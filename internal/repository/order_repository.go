package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// 明細は消さない。明細→注文の順で消すのはusecase側のトランザクション。
	Delete(ctx context.Context, orderID int64) error
}
