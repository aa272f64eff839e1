package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"approval-router/internal/domain/delegation"
	"approval-router/internal/domain/request"
	"approval-router/internal/domain/rule"
)

// writeDomainError maps domain sentinel errors to HTTP status codes.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, rule.ErrNotFound),
		errors.Is(err, request.ErrNotFound),
		errors.Is(err, delegation.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, request.ErrNotAuthorized):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, request.ErrNotPending):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, rule.ErrTierOverlap),
		errors.Is(err, rule.ErrNoRuleConfigured),
		errors.Is(err, rule.ErrNoTierForAmount):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
}
