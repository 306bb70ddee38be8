package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/djordjeivanovic11/ladimood-back/internal/apperr"
	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	"github.com/djordjeivanovic11/ladimood-back/internal/logger"
	"github.com/djordjeivanovic11/ladimood-back/internal/middleware"
)

type ErrorResponse struct {
	Error string      `json:"error"`
	Code  apperr.Code `json:"code"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

var codeByStatus = map[int]apperr.Code{
	http.StatusBadRequest:            apperr.CodeInvalidArgument,
	http.StatusUnauthorized:          apperr.CodeUnauthenticated,
	http.StatusForbidden:             apperr.CodeForbidden,
	http.StatusNotFound:              apperr.CodeNotFound,
	http.StatusMethodNotAllowed:      apperr.CodeNotFound,
	http.StatusConflict:              apperr.CodeConflict,
	http.StatusUnsupportedMediaType:  apperr.CodeInvalidArgument,
	http.StatusRequestEntityTooLarge: apperr.CodeInvalidArgument,
	http.StatusTooManyRequests:       apperr.CodeRateLimited,
}

// apperrはそのまま、echoのエラーはステータスから、それ以外は500
func ErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, body := toResponse(err)
		if status >= http.StatusInternalServerError {
			log.Error(c.Request().Context(), "request failed", err)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil {
			log.Error(c.Request().Context(), "writing error response failed", werr)
		}
	}
}

func toResponse(err error) (int, ErrorResponse) {
	if ae, ok := apperr.As(err); ok {
		return ae.Status(), ErrorResponse{Error: ae.Message, Code: ae.Code}
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if code, ok := codeByStatus[he.Code]; ok {
			return he.Code, ErrorResponse{Error: fmt.Sprint(he.Message), Code: code}
		}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: apperr.CodeInternal}
}

// Bindの失敗もINVALID_ARGUMENTにそろえる
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return apperr.Wrap(apperr.CodeInvalidArgument, err, fmt.Sprint(he.Message))
		}
		return apperr.Wrap(apperr.CodeInvalidArgument, err, "invalid request body")
	}
	return c.Validate(req)
}

func currentUser(c echo.Context) (*model.User, error) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, apperr.Unauthenticated("Not authenticated")
	}
	return u, nil
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.InvalidArgument("invalid " + name)
	}
	return id, nil
}
