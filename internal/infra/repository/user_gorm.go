package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type UserGormRepository struct {
	db *gorm.DB
}

// DI
func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repo.ErrConflict
	}
	return err
}

func (r *UserGormRepository) FindByID(ctx context.Context, userID int64) (model.User, error) {
	var user model.User

	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, repo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (r *UserGormRepository) FindByName(ctx context.Context, name string) (model.User, error) {
	var user model.User

	err := r.db.WithContext(ctx).Where("name = ?", name).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, repo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User

	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, repo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (r *UserGormRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User

	if err := r.db.WithContext(ctx).Order("id asc").Find(&users).Error; err != nil {
		return []model.User{}, err
	}
	return users, nil
}

func (r *UserGormRepository) Update(ctx context.Context, user model.User) error {
	err := r.db.WithContext(ctx).Save(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repo.ErrConflict
	}
	return err
}

func (r *UserGormRepository) Delete(ctx context.Context, userID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.User{}, userID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 名前で探して無ければ作る（レガシーの名前ベース経路用）。
func (r *UserGormRepository) ResolveOrCreateByName(ctx context.Context, name string) (model.User, error) {
	var user model.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := lockForUpdate(tx).
			Where("name = ?", name).
			First(&user).Error

		if findErr == nil {
			return nil
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		// emailはuniqueなので、nameから決まるプレースホルダを入れておく
		newUser := model.User{
			Name:  name,
			Email: fmt.Sprintf("%s@unregistered.local", name),
			Role:  model.RoleUser,
		}

		if err := tx.Create(&newUser).Error; err != nil {
			// 同時に同じ名前が入ったら拾い直す
			retryErr := tx.Where("name = ?", name).First(&user).Error
			if retryErr == nil {
				return nil
			}
			return err
		}

		user = newUser
		return nil
	})

	if err != nil {
		return model.User{}, err
	}
	return user, nil
}
