package server

import (
	"github.com/labstack/echo/v4"

	"app/internal/config"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.User.RegisterRoutes(e, cfg)
	h.Product.RegisterRoutes(e, cfg)
	h.Category.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
}
