package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// ユーザーのカート行を一覧取得
func (r *CartGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.CartEntry, error) {
	var entries []model.CartEntry

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&entries).Error; err != nil {
		return []model.CartEntry{}, err
	}

	return entries, nil
}

// カート行＋現在の商品価格。注文確定はこの価格をスナップショットする。
func (r *CartGormRepository) ListWithProductByUserID(ctx context.Context, userID int64) ([]repo.CartEntryWithProduct, error) {
	var rows []repo.CartEntryWithProduct

	err := r.db.WithContext(ctx).
		Table("cart_entries").
		Select("cart_entries.id as entry_id, cart_entries.product_id, products.name as product_name, cart_entries.quantity, products.price as unit_price").
		Joins("join products on products.id = cart_entries.product_id").
		Where("cart_entries.user_id = ?", userID).
		Order("cart_entries.id asc").
		Scan(&rows).Error

	if err != nil {
		return []repo.CartEntryWithProduct{}, err
	}
	return rows, nil
}

// 同一(user, product)は数量加算。読み→書きを1トランザクション＋行ロックで行う。
func (r *CartGormRepository) UpsertEntry(ctx context.Context, userID int64, productID int64, addQty int64) (model.CartEntry, error) {
	if addQty <= 0 {
		return model.CartEntry{}, errors.New("invalid quantity")
	}

	var out model.CartEntry

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry model.CartEntry

		err := lockForUpdate(tx).
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&entry).Error

		if err == nil {
			// 既存ありなら数量を増やす
			newQty := entry.Quantity + addQty

			res := tx.Model(&model.CartEntry{}).
				Where("id = ?", entry.ID).
				Update("quantity", newQty)

			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repo.ErrNotFound
			}

			entry.Quantity = newQty
			out = entry
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 無い場合は新規作成
		newEntry := model.CartEntry{
			UserID:    userID,
			ProductID: productID,
			Quantity:  addQty,
		}

		if err := tx.Create(&newEntry).Error; err != nil {
			return err
		}

		out = newEntry
		return nil
	})

	if err != nil {
		return model.CartEntry{}, err
	}
	return out, nil
}

// 数量を上書き（加算しない）
func (r *CartGormRepository) OverwriteQuantity(ctx context.Context, entryID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartEntry{}).
		Where("id = ?", entryID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// (user, product) 指定で上書き、無ければ作成。レガシーの名前ベース経路用。
func (r *CartGormRepository) OverwriteByUserAndProduct(ctx context.Context, userID int64, productID int64, qty int64) (model.CartEntry, error) {
	if qty <= 0 {
		return model.CartEntry{}, errors.New("invalid quantity")
	}

	var out model.CartEntry

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry model.CartEntry

		err := lockForUpdate(tx).
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&entry).Error

		if err == nil {
			res := tx.Model(&model.CartEntry{}).
				Where("id = ?", entry.ID).
				Update("quantity", qty)

			if res.Error != nil {
				return res.Error
			}

			entry.Quantity = qty
			out = entry
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		newEntry := model.CartEntry{
			UserID:    userID,
			ProductID: productID,
			Quantity:  qty,
		}

		if err := tx.Create(&newEntry).Error; err != nil {
			return err
		}

		out = newEntry
		return nil
	})

	if err != nil {
		return model.CartEntry{}, err
	}
	return out, nil
}

func (r *CartGormRepository) FindByID(ctx context.Context, entryID int64) (model.CartEntry, error) {
	var entry model.CartEntry

	err := r.db.WithContext(ctx).
		Where("id = ?", entryID).
		First(&entry).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartEntry{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartEntry{}, err
	}
	return entry, nil
}

func (r *CartGormRepository) DeleteByID(ctx context.Context, entryID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.CartEntry{}, entryID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 注文確定後のカートクリアで使う。0行でもエラーにしない。
func (r *CartGormRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartEntry{}).Error
}

func (r *CartGormRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&model.CartEntry{})

	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
