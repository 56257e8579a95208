package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"app/internal/config"
	"app/internal/handler"
)

// Handlersはルート登録に必要なハンドラ一式
type Handlers struct {
	User     *handler.UserHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
}

// Newはechoを組み立ててルートを登録する
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	RegisterRoutes(e, cfg, h)

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
