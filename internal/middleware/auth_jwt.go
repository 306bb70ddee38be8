package middleware

import (
	"context"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/djordjeivanovic11/ladimood-back/internal/apperr"
	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	"github.com/djordjeivanovic11/ladimood-back/internal/logger"
)

const msgNotAuthenticated = "Not authenticated"

// アクセストークンを検証してユーザーを返す
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (*model.User, error)
}

// Bearerトークンを検証し、ユーザーをcontextに積む。
// ブラウザのWebSocketはヘッダを付けられないので、upgrade要求に限りクエリのaccess_tokenも見る
func AuthJWT(authn Authenticator, log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c)
			if !ok {
				c.Response().Header().Set("WWW-Authenticate", "Bearer")
				return apperr.Unauthenticated(msgNotAuthenticated)
			}

			user, err := authn.Authenticate(c.Request().Context(), raw)
			if err != nil {
				c.Response().Header().Set("WWW-Authenticate", "Bearer")
				return err
			}

			c.Set(CtxUserKey, user)
			ctx := log.WithUserID(c.Request().Context(), user.ID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, bool) {
	authz := c.Request().Header.Get(echo.HeaderAuthorization)
	if authz != "" {
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", false
		}
		raw := strings.TrimSpace(parts[1])
		return raw, raw != ""
	}
	if websocket.IsWebSocketUpgrade(c.Request()) {
		raw := strings.TrimSpace(c.QueryParam("access_token"))
		return raw, raw != ""
	}
	return "", false
}
