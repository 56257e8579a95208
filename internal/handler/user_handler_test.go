package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	repo "app/internal/repository"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mocks
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByName(ctx context.Context, name string) (model.User, error) {
	args := m.Called(ctx, name)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	us, _ := args.Get(0).([]model.User)
	return us, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *UserRepoMock) ResolveOrCreateByName(ctx context.Context, name string) (model.User, error) {
	args := m.Called(ctx, name)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

var _ repo.UserRepository = (*UserRepoMock)(nil)

type stubIssuer struct{}

func (s *stubIssuer) Issue(userID int64, name string, role model.Role, now time.Time) (string, time.Time, error) {
	return "signed-token", now.Add(6 * time.Hour), nil
}

type stubClock struct{}

func (s *stubClock) Now() time.Time {
	return time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
}

// =====================
// helper
// =====================

func newUserServer(t *testing.T) (*echo.Echo, *UserRepoMock) {
	t.Helper()

	userRepo := new(UserRepoMock)
	hasher := auth.NewBcryptPasswordHasher(4)

	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher)
	loginUC := auth.NewLoginUsecase(userRepo, auth.NewBcryptPasswordVerifier(), &stubIssuer{}, &stubClock{})
	userUC := usecase.NewUserUsecase(userRepo, hasher)

	h := handler.NewUserHandler(registerUC, loginUC, userUC)

	e := echo.New()
	h.RegisterRoutes(e, config.Config{JWTSecret: testSecret})
	return e, userRepo
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()

	hashed, err := auth.NewBcryptPasswordHasher(4).Hash(plain)
	require.NoError(t, err)
	return hashed
}

// =====================
// register
// =====================

func TestUserHandler_Register_Success(t *testing.T) {
	e, userRepo := newUserServer(t)

	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").
		Return(model.User{}, repo.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	body := `{"u_name":"alice","u_email":"alice@example.com","u_password":"password123"}`
	rec := doJSON(e, http.MethodPost, "/api/users/register", body, "")

	assert.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "success", env.Status)

	var data struct {
		User model.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "alice", data.User.Name)
	// ハッシュは外に出さない
	assert.NotContains(t, rec.Body.String(), "password_hash")
}

func TestUserHandler_Register_PasswordTooShort(t *testing.T) {
	e, _ := newUserServer(t)

	body := `{"u_name":"alice","u_email":"alice@example.com","u_password":"short"}`
	rec := doJSON(e, http.MethodPost, "/api/users/register", body, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "fail", env.Status)
	assert.Equal(t, "password too short", env.Message)
}

func TestUserHandler_Register_EmailAlreadyExists(t *testing.T) {
	e, userRepo := newUserServer(t)

	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").
		Return(model.User{ID: 1, Email: "alice@example.com"}, nil)

	body := `{"u_name":"alice","u_email":"alice@example.com","u_password":"password123"}`
	rec := doJSON(e, http.MethodPost, "/api/users/register", body, "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "email already registered", decodeEnvelope(t, rec).Message)
}

// =====================
// login
// =====================

func TestUserHandler_Login_Success(t *testing.T) {
	e, userRepo := newUserServer(t)

	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(model.User{
		ID:           1,
		Name:         "alice",
		Email:        "alice@example.com",
		PasswordHash: hashPassword(t, "password123"),
		Role:         model.RoleUser,
	}, nil)

	body := `{"u_email":"alice@example.com","u_password":"password123"}`
	rec := doJSON(e, http.MethodPost, "/api/users/login", body, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "success", env.Status)

	var data struct {
		Token auth.JwtAccessToken `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "signed-token", data.Token.AccessToken)
	assert.Equal(t, int((6 * time.Hour).Seconds()), data.Token.ExpiresIn)
}

func TestUserHandler_Login_WrongPassword(t *testing.T) {
	e, userRepo := newUserServer(t)

	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(model.User{
		ID:           1,
		PasswordHash: hashPassword(t, "password123"),
	}, nil)

	body := `{"u_email":"alice@example.com","u_password":"wrong"}`
	rec := doJSON(e, http.MethodPost, "/api/users/login", body, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "fail", env.Status)
	assert.Equal(t, "invalid email or password", env.Message)
}

// =====================
// 管理系のガード
// =====================

func TestUserHandler_List_RequiresAdmin(t *testing.T) {
	e, _ := newUserServer(t)

	rec := doJSON(e, http.MethodGet, "/api/users/all", "", bearerToken(t, "USER"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUserHandler_Get_RequiresToken(t *testing.T) {
	e, _ := newUserServer(t)

	rec := doJSON(e, http.MethodGet, "/api/users/1", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserHandler_Get_Success(t *testing.T) {
	e, userRepo := newUserServer(t)

	userRepo.On("FindByID", mock.Anything, int64(1)).
		Return(model.User{ID: 1, Name: "alice"}, nil)

	rec := doJSON(e, http.MethodGet, "/api/users/1", "", bearerToken(t, "USER"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", decodeEnvelope(t, rec).Status)
}
