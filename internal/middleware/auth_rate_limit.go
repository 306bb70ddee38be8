package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/djordjeivanovic11/ladimood-back/internal/apperr"
	"github.com/djordjeivanovic11/ladimood-back/internal/logger"
)

const maxRateLimitBody = 64 << 10

// ratelimit.Limiterを満たす
type RateLimiter interface {
	Allow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

type RateLimitMetrics interface {
	RateLimited(policy string)
}

// IPごと・メールアドレスごとの上限
type AuthRateLimitPolicy struct {
	Name       string
	Window     time.Duration
	IPLimit    int64
	EmailLimit int64
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.Window > 0 && (p.IPLimit > 0 || p.EmailLimit > 0)
}

func (p AuthRateLimitPolicy) name() string {
	if n := strings.ToLower(strings.TrimSpace(p.Name)); n != "" {
		return n
	}
	return "auth"
}

// limiterがnil（Redis未設定）なら何もしない
func AuthRateLimit(policy AuthRateLimitPolicy, limiter RateLimiter, metrics RateLimitMetrics, log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if !policy.enabled() || limiter == nil {
			return next
		}
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			if policy.IPLimit > 0 {
				if ip := c.RealIP(); ip != "" {
					if err := check(ctx, limiter, "ip:"+policy.name()+":"+ip, policy.IPLimit, policy.Window); err != nil {
						return blocked(ctx, log, metrics, policy, "ip", err)
					}
				}
			}

			if policy.EmailLimit > 0 {
				body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxRateLimitBody))
				if err != nil {
					return apperr.Wrap(apperr.CodeInvalidArgument, err, "could not read request body")
				}
				c.Request().Body = io.NopCloser(bytes.NewReader(body))

				if email := extractEmail(c.Request().Header.Get(echo.HeaderContentType), body); email != "" {
					scope := "email:" + policy.name() + ":" + hashValue(email)
					if err := check(ctx, limiter, scope, policy.EmailLimit, policy.Window); err != nil {
						return blocked(ctx, log, metrics, policy, "email", err)
					}
				}
			}
			return next(c)
		}
	}
}

var errLimitExceeded = apperr.New(apperr.CodeRateLimited, "Too many requests, try again later")

func check(ctx context.Context, limiter RateLimiter, scope string, limit int64, window time.Duration) error {
	allowed, _, err := limiter.Allow(ctx, scope, limit, window)
	if err != nil {
		return apperr.Internal(err)
	}
	if !allowed {
		return errLimitExceeded
	}
	return nil
}

func blocked(ctx context.Context, log *logger.Logger, metrics RateLimitMetrics, policy AuthRateLimitPolicy, scope string, err error) error {
	if !apperr.IsCode(err, apperr.CodeRateLimited) {
		log.Error(ctx, "rate limiter unavailable", err)
		return err
	}
	metrics.RateLimited(policy.name())
	log.Warn(log.WithFields(ctx, map[string]any{
		"policy":         policy.name(),
		"scope":          scope,
		"window_seconds": int(policy.Window.Seconds()),
	}), "auth rate limit blocked", nil)
	return err
}

// ログインはOAuth2フォームのusername、それ以外はJSONのemail
func extractEmail(contentType string, body []byte) string {
	if strings.HasPrefix(contentType, echo.MIMEApplicationForm) {
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return ""
		}
		if v := values.Get("username"); v != "" {
			return normalizeEmail(v)
		}
		return normalizeEmail(values.Get("email"))
	}
	var payload struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return normalizeEmail(payload.Email)
}

func normalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func hashValue(v string) string {
	sum := sha256.Sum256([]byte(v))
	return hex.EncodeToString(sum[:])
}
