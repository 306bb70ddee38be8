package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	auth "github.com/djordjeivanovic11/ladimood-back/internal/usecase/auth_usecase"
)

type AuthHandler struct {
	registerUC *auth.RegisterUserUsecase
	loginUC    *auth.LoginUsecase
	refreshUC  *auth.RefreshUsecase
	changeUC   *auth.ChangePasswordUsecase
	forgotUC   *auth.ForgotPasswordUsecase
	resetUC    *auth.ResetPasswordUsecase
}

func NewAuthHandler(
	registerUC *auth.RegisterUserUsecase,
	loginUC *auth.LoginUsecase,
	refreshUC *auth.RefreshUsecase,
	changeUC *auth.ChangePasswordUsecase,
	forgotUC *auth.ForgotPasswordUsecase,
	resetUC *auth.ResetPasswordUsecase,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		refreshUC:  refreshUC,
		changeUC:   changeUC,
		forgotUC:   forgotUC,
		resetUC:    resetUC,
	}
}

// ログインと会員系はレート制限を個別にかける
type AuthRouteMiddleware struct {
	RequireUser  echo.MiddlewareFunc
	LoginLimit   echo.MiddlewareFunc
	AccountLimit echo.MiddlewareFunc
}

// /auth 以下を登録
func (h *AuthHandler) RegisterRoutes(g *echo.Group, mw AuthRouteMiddleware) {
	g.POST("/register", h.register, mw.AccountLimit)
	g.POST("/login", h.login, mw.LoginLimit)
	g.POST("/token/refresh", h.refresh)
	g.POST("/forgot-password", h.forgotPassword, mw.AccountLimit)
	g.POST("/reset-password", h.resetPassword)

	g.POST("/change-password", h.changePassword, mw.RequireUser)
	g.POST("/logout", h.logout, mw.RequireUser)
}

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number"`
}

// OAuth2のパスワードフォーム。usernameにemailが入る
type loginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type UserResponse struct {
	ID          int64          `json:"id"`
	Email       string         `json:"email"`
	FullName    string         `json:"full_name"`
	PhoneNumber string         `json:"phone_number"`
	IsActive    bool           `json:"is_active"`
	Role        model.RoleName `json:"role,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func toUserResponse(u *model.User) UserResponse {
	out := UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if u.Role != nil {
		out.Role = u.Role.Name
	}
	return out
}

func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	pair, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:    req.Username,
		Password: req.Password,
	})
	if err != nil {
		c.Response().Header().Set("WWW-Authenticate", "Bearer")
		return err
	}
	return c.JSON(http.StatusOK, pair)
}

// アクセストークンは不要。リフレッシュトークンだけで再発行する
func (h *AuthHandler) refresh(c echo.Context) error {
	var req refreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	out, err := h.refreshUC.Execute(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) changePassword(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.changeUC.Execute(c.Request().Context(), user, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Password changed successfully"})
}

// 登録の有無に関わらず同じ応答
func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.forgotUC.Execute(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: auth.ForgotPasswordMessage})
}

func (h *AuthHandler) resetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.resetUC.Execute(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Password reset successfully"})
}

// トークンはサーバーに保存していないので応答だけ返す
func (h *AuthHandler) logout(c echo.Context) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logout successful"})
}
