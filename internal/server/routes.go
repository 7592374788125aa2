package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth        *handler.AuthHandler
	Order       *handler.OrderHandler
	Transaction *handler.TransactionHandler
	Product     *handler.ProductHandler
	Category    *handler.CategoryHandler
	User        *handler.UserHandler
	Survey      *handler.SurveyHandler
	Report      *handler.ReportHandler
}

// 公開ルートはlogin・survey・product-stockレポートのみ。
// それ以外はJWT必須。
func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Auth.RegisterPublicRoutes(e)
	h.Survey.RegisterRoutes(e)
	h.Report.RegisterRoutes(e)

	auth := middleware.AuthJWT(cfg)

	protected := e.Group("", auth)
	h.Auth.RegisterProtectedRoutes(protected)

	h.Order.RegisterRoutes(e.Group("/orders", auth))
	h.Transaction.RegisterRoutes(e.Group("/transactions", auth))
	h.Product.RegisterRoutes(e.Group("/products", auth))
	h.Category.RegisterRoutes(e.Group("/categories", auth))
	h.User.RegisterRoutes(e.Group("/users", auth))
}
