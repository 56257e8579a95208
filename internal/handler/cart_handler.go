package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	UserID    int64 `json:"userId"`
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"cart_quantity"`
}

type OverwriteCartRequest struct {
	Quantity int64 `json:"cart_quantity"`
}

type UpdateCartByNamesRequest struct {
	UserName    string `json:"userName"`
	ProductName string `json:"productName"`
	Quantity    int64  `json:"cart_quantity"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/cart")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.addEntry)
	g.GET("/:userName", h.listByUser)
	g.PUT("", h.updateByNames)
	g.PUT("/:cartId", h.overwriteQuantity)
	g.DELETE("/:cartId", h.deleteEntry)
	g.DELETE("", h.deleteAll)
}

// 追加は加算。IDが無ければ404。
func (h *CartHandler) addEntry(c echo.Context) error {
	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid body"))
	}

	entry, err := h.uc.AddEntry(c.Request().Context(), req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, success(echo.Map{"cart": entry}))
}

func (h *CartHandler) listByUser(c echo.Context) error {
	entries, err := h.uc.ListByUserName(c.Request().Context(), c.Param("userName"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{"cartItems": entries}))
}

// レガシーの名前ベース更新（上書き、無ければ作成）
func (h *CartHandler) updateByNames(c echo.Context) error {
	var req UpdateCartByNamesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid body"))
	}

	entry, err := h.uc.UpdateByNames(c.Request().Context(), req.UserName, req.ProductName, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{"cart": entry}))
}

// 数量の上書き
func (h *CartHandler) overwriteQuantity(c echo.Context) error {
	entryID, err := strconv.ParseInt(c.Param("cartId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid id"))
	}

	var req OverwriteCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid body"))
	}

	entry, err := h.uc.OverwriteQuantity(c.Request().Context(), entryID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{"cart": entry}))
}

func (h *CartHandler) deleteEntry(c echo.Context) error {
	entryID, err := strconv.ParseInt(c.Param("cartId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid id"))
	}

	if err := h.uc.DeleteEntry(c.Request().Context(), entryID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{"message": "cart entry deleted successfully"}))
}

func (h *CartHandler) deleteAll(c echo.Context) error {
	deleted, err := h.uc.DeleteAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{
		"message":      "all items in the cart deleted successfully",
		"deletedCount": deleted,
	}))
}
