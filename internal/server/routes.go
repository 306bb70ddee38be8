package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/djordjeivanovic11/ladimood-back/internal/handler"
	"github.com/djordjeivanovic11/ladimood-back/internal/middleware"
)

// /api/auth, /api/account, /api/management
func registerRoutes(e *echo.Echo, opts Options, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, handler.MessageResponse{Message: "ok"})
	})
	if opts.MetricsRoute != nil {
		e.GET("/metrics", echo.WrapHandler(opts.MetricsRoute))
	}

	requireUser := middleware.AuthJWT(opts.Authenticator, opts.Log)
	api := e.Group("/api")

	rl := opts.RateLimit
	h.Auth.RegisterRoutes(api.Group("/auth"), handler.AuthRouteMiddleware{
		RequireUser: requireUser,
		LoginLimit: middleware.AuthRateLimit(middleware.AuthRateLimitPolicy{
			Name:       "login",
			Window:     rl.Window,
			IPLimit:    int64(rl.LoginLimit),
			EmailLimit: int64(rl.LoginLimit),
		}, opts.Limiter, opts.Metrics, opts.Log),
		AccountLimit: middleware.AuthRateLimit(middleware.AuthRateLimitPolicy{
			Name:       "account",
			Window:     rl.Window,
			IPLimit:    int64(rl.AccountLimit),
			EmailLimit: int64(rl.AccountLimit),
		}, opts.Limiter, opts.Metrics, opts.Log),
	})

	// 商品・ニュースレター・紹介はログイン不要
	account := api.Group("/account")
	h.Product.RegisterRoutes(account)
	h.Account.RegisterRoutes(account, requireUser)

	member := account.Group("", requireUser)
	h.Address.RegisterRoutes(member)
	h.Cart.RegisterRoutes(member)
	h.Order.RegisterRoutes(member)

	management := api.Group("/management")
	h.Account.RegisterContactRoute(management)

	admin := management.Group("", requireUser, middleware.AdminRoleGuard())
	h.AdminOrder.RegisterRoutes(admin)
	h.AdminProduct.RegisterRoutes(admin)
}
