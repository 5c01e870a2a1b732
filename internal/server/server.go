package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// New はルート登録済みのechoを返す。
func New(cfg config.Config, cartH *handler.RemoteCartHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())

	cartH.RegisterRoutes(e, cfg)

	return e
}

// Start はサーバーを起動する。
func Start(addr string, cfg config.Config, cartH *handler.RemoteCartHandler) error {
	return New(cfg, cartH).Start(addr)
}
