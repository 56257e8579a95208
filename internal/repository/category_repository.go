package repository

import (
	"context"

	"app/internal/domain/model"
)

type CategoryRepository interface {
	// 名前重複はErrConflict
	Create(ctx context.Context, c model.Category) (model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	FindByName(ctx context.Context, name string) (model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, c model.Category) error
	Delete(ctx context.Context, id int64) error

	// 商品登録でカテゴリ名を受けたときだけ使う
	ResolveOrCreateByName(ctx context.Context, name string) (model.Category, error)
}
