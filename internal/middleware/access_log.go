package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/djordjeivanovic11/ladimood-back/internal/logger"
)

type RequestMetrics interface {
	ObserveRequest(method, route string, status int, d time.Duration)
}

// エラーはここでレスポンスにしてからステータスを記録する
func AccessLog(log *logger.Logger, metrics RequestMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}
			latency := time.Since(start)

			req := c.Request()
			status := c.Response().Status
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			log.Request(req.Context(), req.Method, req.URL.Path, status, latency)
			metrics.ObserveRequest(req.Method, route, status, latency)
			return nil
		}
	}
}
