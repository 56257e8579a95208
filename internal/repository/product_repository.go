package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品＋カテゴリ名のJOIN結果
type ProductWithCategory struct {
	Product      model.Product
	CategoryName string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	Create(ctx context.Context, p model.Product) (model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	FindByIDWithCategory(ctx context.Context, id int64) (ProductWithCategory, error)
	List(ctx context.Context) ([]model.Product, error)
	// 名前の部分一致。空文字なら全件。
	ListByNameLike(ctx context.Context, name string) ([]model.Product, error)
	ListByCategoryName(ctx context.Context, categoryName string) ([]model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error

	// 名前で探して無ければ作る。レガシーの名前ベース経路からだけ呼ぶこと。
	ResolveOrCreateByName(ctx context.Context, name string) (model.Product, error)
}
