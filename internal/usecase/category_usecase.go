package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
}

// DI
func NewCategoryUsecase(categoryRepo repo.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{categoryRepo: categoryRepo}
}

func (u *CategoryUsecase) Create(ctx context.Context, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	c, err := u.categoryRepo.Create(ctx, model.Category{Name: name})
	if errors.Is(err, repo.ErrConflict) {
		return model.Category{}, NewHTTPError(http.StatusConflict, "category already exists")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	cs, err := u.categoryRepo.List(ctx)
	if err != nil {
		return []model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cs, nil
}

func (u *CategoryUsecase) GetByID(ctx context.Context, id int64) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	c, err := u.categoryRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, id int64, name string) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	err := u.categoryRepo.Update(ctx, model.Category{ID: id, Name: name})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
	}
	if errors.Is(err, repo.ErrConflict) {
		return model.Category{}, NewHTTPError(http.StatusConflict, "category already exists")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetByID(ctx, id)
}

func (u *CategoryUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.categoryRepo.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
