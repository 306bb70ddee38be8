package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/multierr"

	"github.com/djordjeivanovic11/ladimood-back/internal/config"
	"github.com/djordjeivanovic11/ladimood-back/internal/handler"
	"github.com/djordjeivanovic11/ladimood-back/internal/logger"
	"github.com/djordjeivanovic11/ladimood-back/internal/metrics"
	"github.com/djordjeivanovic11/ladimood-back/internal/middleware"
	"github.com/djordjeivanovic11/ladimood-back/internal/validator"
)

const (
	bodyLimit       = "1M"
	shutdownTimeout = 10 * time.Second
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Account      *handler.AccountHandler
	Address      *handler.AddressHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	Product      *handler.ProductHandler
	AdminOrder   *handler.AdminOrderHandler
	AdminProduct *handler.AdminProductHandler
}

type Options struct {
	Log           *logger.Logger
	Metrics       *metrics.Metrics
	MetricsRoute  http.Handler
	Authenticator middleware.Authenticator
	// nilならレート制限なし
	Limiter      middleware.RateLimiter
	RateLimit    config.RateLimitConfig
	AllowOrigins []string
}

// ミドルウェアとルートを組み立てたechoを返す
func New(opts Options, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = handler.ErrorHandler(opts.Log)

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID(opts.Log))
	e.Use(middleware.AccessLog(opts.Log, opts.Metrics))
	e.Use(echomw.BodyLimit(bodyLimit))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     allowOrigins(opts.AllowOrigins),
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType, middleware.HeaderRequestID},
		ExposeHeaders:    []string{middleware.HeaderRequestID, echo.HeaderContentDisposition, "File-Name"},
		AllowCredentials: true,
	}))

	registerRoutes(e, opts, h)
	return e
}

func allowOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// ctxがキャンセルされたら新規受付を止め、処理中のリクエストを待ってからclosersを閉じる
func Run(ctx context.Context, e *echo.Echo, addr string, log *logger.Logger, closers ...func() error) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info(log.WithField(ctx, "addr", addr), "http server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case err := <-errCh:
		runErr = err
	case <-ctx.Done():
		log.Info(ctx, "shutting down http server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := multierr.Append(runErr, e.Shutdown(shutdownCtx))
	for _, c := range closers {
		err = multierr.Append(err, c())
	}
	return err
}
