package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

// 一意制約（email等）に衝突した
var ErrConflict = errors.New("conflict")

// ユーザーの永続化を約束
type UserRepository interface {
	// 新規ユーザー作成。email/name重複はErrConflict。
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (model.User, error)
	FindByName(ctx context.Context, name string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user model.User) error
	Delete(ctx context.Context, userID int64) error

	// 名前で探して無ければ作る。レガシーの名前ベース経路からだけ呼ぶこと。
	ResolveOrCreateByName(ctx context.Context, name string) (model.User, error)
}
