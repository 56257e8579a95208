package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

type CreateProductInput struct {
	Name         string
	Author       string
	PublishDate  string
	Description  string
	Price        float64
	Quantity     int64
	Image        string
	CategoryName string
}

type UpdateProductInput struct {
	Name        string
	Author      string
	PublishDate string
	Description string
	Price       *float64
	Quantity    *int64
	Image       string
}

// 商品＋カテゴリ名の出力
type ProductWithCategoryOutput struct {
	model.Product
	CategoryName string `json:"category_name"`
}

// 商品登録。カテゴリは名前で解決し、無ければここでだけ作る。
func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (model.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if strings.TrimSpace(in.CategoryName) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "category is required")
	}
	if in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if in.Quantity < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	category, err := u.categoryRepo.ResolveOrCreateByName(ctx, strings.TrimSpace(in.CategoryName))
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p := model.Product{
		Name:        strings.TrimSpace(in.Name),
		Author:      in.Author,
		PublishDate: in.PublishDate,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Image:       in.Image,
		CategoryID:  category.ID,
	}

	created, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *ProductUsecase) List(ctx context.Context) ([]model.Product, error) {
	ps, err := u.productRepo.List(ctx)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ps, nil
}

func (u *ProductUsecase) GetByID(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) GetByIDWithCategory(ctx context.Context, id int64) (ProductWithCategoryOutput, error) {
	if id <= 0 {
		return ProductWithCategoryOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	pc, err := u.productRepo.FindByIDWithCategory(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductWithCategoryOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return ProductWithCategoryOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductWithCategoryOutput{
		Product:      pc.Product,
		CategoryName: pc.CategoryName,
	}, nil
}

// 名前の部分一致検索。条件なしなら全件。
func (u *ProductUsecase) ListByName(ctx context.Context, name string) ([]model.Product, error) {
	ps, err := u.productRepo.ListByNameLike(ctx, strings.TrimSpace(name))
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ps, nil
}

func (u *ProductUsecase) ListByCategory(ctx context.Context, categoryName string) ([]model.Product, error) {
	if strings.TrimSpace(categoryName) == "" {
		return []model.Product{}, NewHTTPError(http.StatusBadRequest, "category is required")
	}

	ps, err := u.productRepo.ListByCategoryName(ctx, categoryName)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(ps) == 0 {
		return []model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	return ps, nil
}

func (u *ProductUsecase) Update(ctx context.Context, id int64, in UpdateProductInput) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if strings.TrimSpace(in.Name) != "" {
		p.Name = strings.TrimSpace(in.Name)
	}
	if in.Author != "" {
		p.Author = in.Author
	}
	if in.PublishDate != "" {
		p.PublishDate = in.PublishDate
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Image != "" {
		p.Image = in.Image
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid price")
		}
		p.Price = *in.Price
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
		p.Quantity = *in.Quantity
	}

	if err := u.productRepo.Update(ctx, p); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.productRepo.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
