package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/djordjeivanovic11/ladimood-back/internal/usecase"
)

type AddressHandler struct {
	uc *usecase.AddressUsecase
}

func NewAddressHandler(uc *usecase.AddressUsecase) *AddressHandler {
	return &AddressHandler{uc: uc}
}

// /account/address
func (h *AddressHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/address", h.get)
	g.POST("/address", h.save)
	g.DELETE("/address", h.delete)
}

type addressRequest struct {
	StreetAddress string `json:"street_address" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code" validate:"required"`
	Country       string `json:"country" validate:"required"`
}

func (h *AddressHandler) get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	a, err := h.uc.Get(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// 作成と更新を兼ねる
func (h *AddressHandler) save(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req addressRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	a, err := h.uc.Save(c.Request().Context(), user.ID, usecase.AddressInput{
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AddressHandler) delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Request().Context(), user.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Address deleted successfully"})
}
