package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CartUsecase は /cart の業務ロジック。
// 追加(AddEntry)は数量加算、更新(OverwriteQuantity)は数量上書き。混ぜない。
type CartUsecase struct {
	cartRepo    repo.CartEntryRepository
	userRepo    repo.UserRepository
	productRepo repo.ProductRepository
}

// DI
func NewCartUsecase(
	cartRepo repo.CartEntryRepository,
	userRepo repo.UserRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:    cartRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

// カートへ追加。IDベースの厳格経路：user/productが無ければ404で落とす。
// 同一(user, product)は行を増やさず数量加算（repo側で1トランザクション）。
func (u *CartUsecase) AddEntry(ctx context.Context, userID int64, productID int64, qty int64) (model.CartEntry, error) {
	if userID <= 0 {
		return model.CartEntry{}, NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	if productID <= 0 {
		return model.CartEntry{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if qty < 1 {
		return model.CartEntry{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	if _, err := u.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.CartEntry{}, NewHTTPError(http.StatusNotFound, "user not found")
		}
		return model.CartEntry{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.CartEntry{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return model.CartEntry{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	entry, err := u.cartRepo.UpsertEntry(ctx, userID, productID, qty)
	if err != nil {
		return model.CartEntry{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return entry, nil
}

func (u *CartUsecase) ListByUserName(ctx context.Context, userName string) ([]model.CartEntry, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return []model.CartEntry{}, NewHTTPError(http.StatusBadRequest, "user name is required")
	}

	user, err := u.userRepo.FindByName(ctx, userName)
	if errors.Is(err, repo.ErrNotFound) {
		return []model.CartEntry{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return []model.CartEntry{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	entries, err := u.cartRepo.ListByUserID(ctx, user.ID)
	if err != nil {
		return []model.CartEntry{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return entries, nil
}

// 数量を上書き。加算はしない。
func (u *CartUsecase) OverwriteQuantity(ctx context.Context, entryID int64, qty int64) (model.CartEntry, error) {
	if entryID <= 0 {
		return model.CartEntry{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if qty < 1 {
		return model.CartEntry{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	err := u.cartRepo.OverwriteQuantity(ctx, entryID, qty)
	if errors.Is(err, repo.ErrNotFound) {
		return model.CartEntry{}, NewHTTPError(http.StatusNotFound, "cart entry not found")
	}
	if err != nil {
		return model.CartEntry{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	entry, err := u.cartRepo.FindByID(ctx, entryID)
	if err != nil {
		return model.CartEntry{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return entry, nil
}

// レガシーの名前ベース更新。ここだけ明示的にresolve-or-createを使う。
// 数量は上書き（無ければ作成）。
func (u *CartUsecase) UpdateByNames(ctx context.Context, userName string, productName string, qty int64) (model.CartEntry, error) {
	userName = strings.TrimSpace(userName)
	productName = strings.TrimSpace(productName)

	if userName == "" || productName == "" {
		return model.CartEntry{}, NewHTTPError(http.StatusBadRequest, "missing required fields")
	}
	if qty < 1 {
		return model.CartEntry{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	user, err := u.userRepo.ResolveOrCreateByName(ctx, userName)
	if err != nil {
		return model.CartEntry{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	product, err := u.productRepo.ResolveOrCreateByName(ctx, productName)
	if err != nil {
		return model.CartEntry{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	entry, err := u.cartRepo.OverwriteByUserAndProduct(ctx, user.ID, product.ID, qty)
	if err != nil {
		return model.CartEntry{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return entry, nil
}

func (u *CartUsecase) DeleteEntry(ctx context.Context, entryID int64) error {
	if entryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.cartRepo.DeleteByID(ctx, entryID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "cart entry not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 全行削除。消す物が無ければ404。
func (u *CartUsecase) DeleteAll(ctx context.Context) (int64, error) {
	deleted, err := u.cartRepo.DeleteAll(ctx)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if deleted == 0 {
		return 0, NewHTTPError(http.StatusNotFound, "no items found in the cart")
	}
	return deleted, nil
}
