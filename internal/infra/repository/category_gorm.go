package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	err := r.db.WithContext(ctx).Create(&c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return model.Category{}, repo.ErrConflict
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) FindByName(ctx context.Context, name string) (model.Category, error) {
	var c model.Category

	err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	var cs []model.Category

	if err := r.db.WithContext(ctx).Order("id asc").Find(&cs).Error; err != nil {
		return []model.Category{}, err
	}
	return cs, nil
}

func (r *CategoryGormRepository) Update(ctx context.Context, c model.Category) error {
	res := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("id = ?", c.ID).
		Update("name", c.Name)

	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return repo.ErrConflict
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CategoryGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Category{}, id)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 名前で探して無ければ作る。商品登録からだけ呼ぶ。
func (r *CategoryGormRepository) ResolveOrCreateByName(ctx context.Context, name string) (model.Category, error) {
	var c model.Category

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := lockForUpdate(tx).
			Where("name = ?", name).
			First(&c).Error

		if findErr == nil {
			return nil
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		newCategory := model.Category{Name: name}

		if err := tx.Create(&newCategory).Error; err != nil {
			retryErr := tx.Where("name = ?", name).First(&c).Error
			if retryErr == nil {
				return nil
			}
			return err
		}

		c = newCategory
		return nil
	})

	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}
