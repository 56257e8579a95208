package handler

import (
	"errors"
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// /api/usersのHTTP。登録・ログインと管理系CRUD。
type UserHandler struct {
	registerUC *auth.RegisterUserUsecase
	loginUC    *auth.LoginUsecase
	userUC     *usecase.UserUsecase
}

// DI
func NewUserHandler(
	registerUC *auth.RegisterUserUsecase,
	loginUC *auth.LoginUsecase,
	userUC *usecase.UserUsecase,
) *UserHandler {
	return &UserHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		userUC:     userUC,
	}
}

type RegisterRequest struct {
	Name     string `json:"u_name"`
	Email    string `json:"u_email"`
	Phone    string `json:"u_phone"`
	Address  string `json:"u_address"`
	Password string `json:"u_password"`
	Role     string `json:"u_role"`
}

type LoginRequest struct {
	Email    string `json:"u_email"`
	Password string `json:"u_password"`
}

type UpdateUserRequest struct {
	Name     string `json:"u_name"`
	Email    string `json:"u_email"`
	Phone    string `json:"u_phone"`
	Address  string `json:"u_address"`
	Password string `json:"u_password"`
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/users")

	g.POST("/register", h.register)
	g.POST("/login", h.login)

	g.GET("/all", h.list, middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	g.GET("/:id", h.get, middleware.AuthJWT(cfg))
	g.PUT("/:id", h.update, middleware.AuthJWT(cfg))
	g.DELETE("/:id", h.delete, middleware.AuthJWT(cfg))
}

func (h *UserHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid body"))
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusCreated, success(echo.Map{"user": out.User}))
}

func (h *UserHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid body"))
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{
		"user":  out.User,
		"token": out.Token,
	}))
}

func (h *UserHandler) list(c echo.Context) error {
	users, err := h.userUC.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{"users": users}))
}

func (h *UserHandler) get(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid id"))
	}

	user, err := h.userUC.GetByID(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{"user": user}))
}

func (h *UserHandler) update(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid id"))
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid body"))
	}

	user, err := h.userUC.Update(c.Request().Context(), userID, usecase.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{"user": user}))
}

func (h *UserHandler) delete(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid id"))
	}

	if err := h.userUC.Delete(c.Request().Context(), userID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{"message": "user deleted successfully"}))
}

// auth_usecaseのsentinelエラーをここで1回だけステータスへ変換する
func writeAuthError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, auth.ErrMissingFields),
		errors.Is(err, auth.ErrInvalidEmailFormat),
		errors.Is(err, auth.ErrPasswordTooShort):
		return c.JSON(http.StatusBadRequest, fail(err.Error()))
	case errors.Is(err, auth.ErrEmailAlreadyExists),
		errors.Is(err, auth.ErrNameAlreadyExists):
		return c.JSON(http.StatusConflict, fail(err.Error()))
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, fail(err.Error()))
	}
	return c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
}
