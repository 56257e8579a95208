package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/productsのHTTP。参照は公開、変更はADMINのみ。
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

type ProductCreateRequest struct {
	Name        string  `json:"p_name"`
	Author      string  `json:"p_author"`
	PublishDate string  `json:"p_publish_date"`
	Description string  `json:"p_description"`
	Price       float64 `json:"p_price"`
	Quantity    int64   `json:"p_quantity"`
	Image       string  `json:"p_image"`
	Category    string  `json:"p_category"`
}

type ProductUpdateRequest struct {
	Name        string   `json:"p_name"`
	Author      string   `json:"p_author"`
	PublishDate string   `json:"p_publish_date"`
	Description string   `json:"p_description"`
	Price       *float64 `json:"p_price"`
	Quantity    *int64   `json:"p_quantity"`
	Image       string   `json:"p_image"`
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/products")

	g.GET("/all", h.list)
	g.GET("", h.listByFilter)
	g.GET("/:id", h.get)
	g.GET("/category/:name", h.listByCategory)
	g.GET("/genres/:id", h.getWithCategory)

	g.POST("", h.create, middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	g.PUT("/:id", h.update, middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	g.DELETE("/:id", h.delete, middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
}

func (h *ProductHandler) create(c echo.Context) error {
	var req ProductCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid body"))
	}

	p, err := h.uc.Create(c.Request().Context(), usecase.CreateProductInput{
		Name:         req.Name,
		Author:       req.Author,
		PublishDate:  req.PublishDate,
		Description:  req.Description,
		Price:        req.Price,
		Quantity:     req.Quantity,
		Image:        req.Image,
		CategoryName: req.Category,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, success(echo.Map{"product": p}))
}

func (h *ProductHandler) list(c echo.Context) error {
	ps, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{"products": ps}))
}

// ?p_name= の部分一致検索
func (h *ProductHandler) listByFilter(c echo.Context) error {
	ps, err := h.uc.ListByName(c.Request().Context(), c.QueryParam("p_name"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{"products": ps}))
}

func (h *ProductHandler) get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid id"))
	}

	p, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{"product": p}))
}

func (h *ProductHandler) listByCategory(c echo.Context) error {
	ps, err := h.uc.ListByCategory(c.Request().Context(), c.Param("name"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{"products": ps}))
}

func (h *ProductHandler) getWithCategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid id"))
	}

	p, err := h.uc.GetByIDWithCategory(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{"product": p}))
}

func (h *ProductHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid id"))
	}

	var req ProductUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid body"))
	}

	p, err := h.uc.Update(c.Request().Context(), id, usecase.UpdateProductInput{
		Name:        req.Name,
		Author:      req.Author,
		PublishDate: req.PublishDate,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Image:       req.Image,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{"product": p}))
}

func (h *ProductHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid id"))
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{"message": "product deleted successfully"}))
}
