package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderLineGormRepository struct {
	db *gorm.DB
}

// DI
func NewOrderLineGormRepository(db *gorm.DB) *OrderLineGormRepository {
	return &OrderLineGormRepository{db: db}
}

func (r *OrderLineGormRepository) CreateBulk(ctx context.Context, orderID int64, lines []model.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}

	for i := range lines {
		lines[i].OrderID = orderID
	}

	return r.db.WithContext(ctx).Create(&lines).Error
}

func (r *OrderLineGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	var lines []model.OrderLine

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&lines).Error; err != nil {
		return []model.OrderLine{}, err
	}

	return lines, nil
}

// 注文削除のカスケード用。0行でもエラーにしない。
func (r *OrderLineGormRepository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&model.OrderLine{}).Error
}

// 全注文の明細一覧（注文＋ユーザー＋商品のJOIN）
func (r *OrderLineGormRepository) ListAllDetails(ctx context.Context) ([]repo.OrderDetailRow, error) {
	var rows []repo.OrderDetailRow

	err := r.db.WithContext(ctx).
		Table("order_lines").
		Select(`orders.id as order_id,
			orders.date,
			orders.total_price,
			users.id as user_id,
			users.name as user_name,
			users.email as user_email,
			users.phone as user_phone,
			users.address as user_address,
			products.name as product_name,
			order_lines.quantity,
			order_lines.unit_price`).
		Joins("join orders on orders.id = order_lines.order_id").
		Joins("join users on users.id = orders.user_id").
		Joins("join products on products.id = order_lines.product_id").
		Order("orders.id asc, order_lines.id asc").
		Scan(&rows).Error

	if err != nil {
		return []repo.OrderDetailRow{}, err
	}
	return rows, nil
}

// 単一注文の明細（商品名付き）
func (r *OrderLineGormRepository) ListDetailsByOrderID(ctx context.Context, orderID int64) ([]repo.OrderLineRow, error) {
	var rows []repo.OrderLineRow

	err := r.db.WithContext(ctx).
		Table("order_lines").
		Select("products.name as product_name, order_lines.quantity, order_lines.unit_price").
		Joins("join products on products.id = order_lines.product_id").
		Where("order_lines.order_id = ?", orderID).
		Order("order_lines.id asc").
		Scan(&rows).Error

	if err != nil {
		return []repo.OrderLineRow{}, err
	}
	return rows, nil
}
