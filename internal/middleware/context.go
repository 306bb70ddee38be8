package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
)

const (
	CtxUserKey      = "user"       // *model.User
	CtxRequestIDKey = "request_id" // string
)

// AuthJWTを通った後でだけ取れる
func CurrentUser(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(CtxUserKey).(*model.User)
	return u, ok && u != nil
}
