package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品＋カテゴリ名
func (r *ProductGormRepository) FindByIDWithCategory(ctx context.Context, id int64) (repo.ProductWithCategory, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return repo.ProductWithCategory{}, err
	}

	var categoryName string
	err = r.db.WithContext(ctx).
		Table("categories").
		Select("name").
		Where("id = ?", p.CategoryID).
		Scan(&categoryName).Error
	if err != nil {
		return repo.ProductWithCategory{}, err
	}

	return repo.ProductWithCategory{
		Product:      p,
		CategoryName: categoryName,
	}, nil
}

func (r *ProductGormRepository) List(ctx context.Context) ([]model.Product, error) {
	var ps []model.Product

	if err := r.db.WithContext(ctx).Order("id asc").Find(&ps).Error; err != nil {
		return []model.Product{}, err
	}
	return ps, nil
}

func (r *ProductGormRepository) ListByNameLike(ctx context.Context, name string) ([]model.Product, error) {
	var ps []model.Product

	q := r.db.WithContext(ctx).Order("id asc")
	if name != "" {
		q = q.Where("name like ?", "%"+name+"%")
	}

	if err := q.Find(&ps).Error; err != nil {
		return []model.Product{}, err
	}
	return ps, nil
}

func (r *ProductGormRepository) ListByCategoryName(ctx context.Context, categoryName string) ([]model.Product, error) {
	var ps []model.Product

	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.*").
		Joins("join categories on categories.id = products.category_id").
		Where("categories.name = ?", categoryName).
		Order("products.id asc").
		Scan(&ps).Error

	if err != nil {
		return []model.Product{}, err
	}
	return ps, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	return r.db.WithContext(ctx).Save(&p).Error
}

func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 名前で探して無ければ作る（レガシーの名前ベース経路用）。
func (r *ProductGormRepository) ResolveOrCreateByName(ctx context.Context, name string) (model.Product, error) {
	var p model.Product

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := lockForUpdate(tx).
			Where("name = ?", name).
			Order("id asc").
			First(&p).Error

		if findErr == nil {
			return nil
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		newProduct := model.Product{Name: name}

		if err := tx.Create(&newProduct).Error; err != nil {
			retryErr := tx.Where("name = ?", name).Order("id asc").First(&p).Error
			if retryErr == nil {
				return nil
			}
			return err
		}

		p = newProduct
		return nil
	})

	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}
