package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	uc *usecase.CategoryUsecase
}

// DI
func NewCategoryHandler(uc *usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

type CategoryRequest struct {
	Name string `json:"c_name"`
}

func (h *CategoryHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/categories")

	g.GET("/all", h.list)
	g.GET("/:id", h.get)

	g.POST("", h.create, middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	g.PUT("/:id", h.update, middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	g.DELETE("/:id", h.delete, middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
}

func (h *CategoryHandler) create(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid body"))
	}

	category, err := h.uc.Create(c.Request().Context(), req.Name)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, success(echo.Map{"category": category}))
}

func (h *CategoryHandler) list(c echo.Context) error {
	categories, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{"categories": categories}))
}

func (h *CategoryHandler) get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid id"))
	}

	category, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{"category": category}))
}

func (h *CategoryHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid id"))
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid body"))
	}

	category, err := h.uc.Update(c.Request().Context(), id, req.Name)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{"category": category}))
}

func (h *CategoryHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid id"))
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{"message": "category deleted successfully"}))
}
