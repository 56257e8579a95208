package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderCreateRequest struct {
	UserName string `json:"userName"`
	Date     string `json:"o_date"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.create)
	g.GET("/details", h.listAllDetails)
	g.GET("/details/:orderId", h.details)
	g.DELETE("/:orderId", h.delete)
}

// カートから注文確定
func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid body"))
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), req.UserName, req.Date)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, success(echo.Map{"order": out}))
}

func (h *OrderHandler) listAllDetails(c echo.Context) error {
	rows, err := h.uc.ListAllDetails(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{"details": rows}))
}

func (h *OrderHandler) details(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid id"))
	}

	rows, err := h.uc.GetDetails(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{"details": rows}))
}

func (h *OrderHandler) delete(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid id"))
	}

	if err := h.uc.DeleteOrder(c.Request().Context(), orderID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, success(echo.Map{"message": "order deleted successfully"}))
}
