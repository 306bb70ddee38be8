package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/djordjeivanovic11/ladimood-back/internal/usecase"
)

// /account のプロフィール・ニュースレター・紹介と、公開の問い合わせフォーム
type AccountHandler struct {
	uc *usecase.AccountUsecase
}

func NewAccountHandler(uc *usecase.AccountUsecase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

func (h *AccountHandler) RegisterRoutes(g *echo.Group, requireUser echo.MiddlewareFunc) {
	g.GET("/details", h.me, requireUser)
	g.GET("/me", h.me, requireUser)
	g.DELETE("/me", h.deleteMe, requireUser)

	g.POST("/add-to-newsletter", h.subscribe)
	g.POST("/referrals", h.referrals)
}

// 問い合わせはログイン不要
func (h *AccountHandler) RegisterContactRoute(g *echo.Group) {
	g.POST("/contact", h.contact)
}

type newsletterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type referralRequest struct {
	Referrals []referralItem `json:"referrals" validate:"dive"`
}

type referralItem struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

type contactRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	Message     string `json:"message" validate:"required"`
	InquiryType string `json:"inquiry_type"`
}

func (h *AccountHandler) me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *AccountHandler) deleteMe(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.uc.DeleteAccount(c.Request().Context(), user.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Account deleted successfully"})
}

func (h *AccountHandler) subscribe(c echo.Context) error {
	var req newsletterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.uc.SubscribeNewsletter(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Subscribed to newsletter"})
}

func (h *AccountHandler) referrals(c echo.Context) error {
	var req referralRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in := make([]usecase.Referral, 0, len(req.Referrals))
	for _, r := range req.Referrals {
		in = append(in, usecase.Referral{Email: r.Email, Name: r.Name})
	}
	if err := h.uc.SendReferrals(c.Request().Context(), in); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Referral emails sent successfully."})
}

func (h *AccountHandler) contact(c echo.Context) error {
	var req contactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	err := h.uc.Contact(c.Request().Context(), usecase.ContactInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Message:     req.Message,
		InquiryType: req.InquiryType,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Message sent successfully"})
}
