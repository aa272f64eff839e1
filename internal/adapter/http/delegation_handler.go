package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"approval-router/internal/usecase/delegation"
)

type DelegationHandler struct{ uc *delegation.Usecase }

func NewDelegationHandler(uc *delegation.Usecase) *DelegationHandler {
	return &DelegationHandler{uc: uc}
}

type grantReq struct {
	FromUserID    string   `json:"from_user_id"   validate:"required,hex32"`
	FromUserName  string   `json:"from_user_name" validate:"required"`
	ToUserID      string   `json:"to_user_id"     validate:"required,hex32"`
	ToUserName    string   `json:"to_user_name"   validate:"required"`
	DocumentTypes []string `json:"document_types" validate:"omitempty,dive,doctype"`
	MaxAmount     float64  `json:"max_amount"     validate:"gte=0,dec2"`
	// Canonical RFC3339 timestamps with timezone
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date"   validate:"required"`
	Reason    string `json:"reason"`
}

func (h *DelegationHandler) Grant(c echo.Context) error {
	var req grantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "start_date must be RFC3339"})
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "end_date must be RFC3339"})
	}
	dto, err := h.uc.Grant(c.Request().Context(), delegation.GrantInput{
		FromUserID:    req.FromUserID,
		FromUserName:  req.FromUserName,
		ToUserID:      req.ToUserID,
		ToUserName:    req.ToUserName,
		DocumentTypes: req.DocumentTypes,
		MaxAmount:     req.MaxAmount,
		StartDate:     start,
		EndDate:       end,
		Reason:        req.Reason,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *DelegationHandler) Revoke(c echo.Context) error {
	delegationID := c.Param("delegation_id")
	if delegationID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing delegation_id path param"})
	}
	dto, err := h.uc.Revoke(c.Request().Context(), delegationID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *DelegationHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
