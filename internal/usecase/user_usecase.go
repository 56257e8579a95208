package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
	auth "app/internal/usecase/auth_usecase"
)

type UserUsecase struct {
	userRepo repo.UserRepository
	hasher   auth.PasswordHasher
}

// DI
func NewUserUsecase(userRepo repo.UserRepository, hasher auth.PasswordHasher) *UserUsecase {
	return &UserUsecase{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

type UpdateUserInput struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	Password string
}

func (u *UserUsecase) List(ctx context.Context) ([]model.User, error) {
	users, err := u.userRepo.List(ctx)
	if err != nil {
		return []model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return users, nil
}

func (u *UserUsecase) GetByID(ctx context.Context, userID int64) (model.User, error) {
	if userID <= 0 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.User{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return user, nil
}

// プロフィール更新。パスワードが来たらハッシュし直す。
func (u *UserUsecase) Update(ctx context.Context, userID int64, in UpdateUserInput) (model.User, error) {
	if userID <= 0 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if in.Name == "" && in.Email == "" && in.Phone == "" && in.Address == "" && in.Password == "" {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "no data provided to update")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.User{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if strings.TrimSpace(in.Name) != "" {
		user.Name = strings.TrimSpace(in.Name)
	}
	if strings.TrimSpace(in.Email) != "" {
		user.Email = strings.TrimSpace(in.Email)
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	if in.Address != "" {
		user.Address = in.Address
	}
	if in.Password != "" {
		hashed, err := u.hasher.Hash(in.Password)
		if err != nil {
			return model.User{}, NewHTTPError(http.StatusInternalServerError, "hash error")
		}
		user.PasswordHash = hashed
	}

	err = u.userRepo.Update(ctx, user)
	if errors.Is(err, repo.ErrConflict) {
		return model.User{}, NewHTTPError(http.StatusConflict, "email already registered")
	}
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return user, nil
}

func (u *UserUsecase) Delete(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.userRepo.Delete(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
