package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"approval-router/internal/usecase/approval"
)

type ApprovalHandler struct{ uc *approval.Usecase }

func NewApprovalHandler(uc *approval.Usecase) *ApprovalHandler { return &ApprovalHandler{uc: uc} }

type submitReq struct {
	DocumentType   string  `json:"document_type"   validate:"required,doctype"`
	DocumentID     string  `json:"document_id"     validate:"required,hex32"`
	DocumentNumber string  `json:"document_number" validate:"required"`
	Amount         float64 `json:"amount"          validate:"required,gt=0,dec2"`
	Currency       string  `json:"currency"        validate:"required,len=3"`
	RequesterID    string  `json:"requester_id"    validate:"required,hex32"`
	RequesterName  string  `json:"requester_name"  validate:"required"`
}

func (h *ApprovalHandler) Submit(c echo.Context) error {
	var req submitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Submit(c.Request().Context(), approval.SubmitInput(req))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type actionReq struct {
	ActorID   string `json:"actor_id"   validate:"required,hex32"`
	ActorName string `json:"actor_name" validate:"required"`
	Comment   string `json:"comment"`
}

func (h *ApprovalHandler) Approve(c echo.Context) error {
	return h.act(c, h.uc.Approve)
}

func (h *ApprovalHandler) Reject(c echo.Context) error {
	return h.act(c, h.uc.Reject)
}

func (h *ApprovalHandler) act(c echo.Context, do func(context.Context, approval.ActionInput) (*approval.RequestDTO, error)) error {
	requestID := c.Param("request_id")
	if requestID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing request_id path param"})
	}
	var req actionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := do(c.Request().Context(), approval.ActionInput{
		RequestID: requestID,
		ActorID:   req.ActorID,
		ActorName: req.ActorName,
		Comment:   req.Comment,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type escalateReq struct {
	ActorID   string `json:"actor_id"   validate:"required,hex32"`
	ActorName string `json:"actor_name" validate:"required"`
	Reason    string `json:"reason"     validate:"required"`
}

func (h *ApprovalHandler) Escalate(c echo.Context) error {
	requestID := c.Param("request_id")
	if requestID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing request_id path param"})
	}
	var req escalateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Escalate(c.Request().Context(), approval.EscalateInput{
		RequestID: requestID,
		ActorID:   req.ActorID,
		ActorName: req.ActorName,
		Reason:    req.Reason,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type commentReq struct {
	AuthorID   string `json:"author_id"   validate:"required,hex32"`
	AuthorName string `json:"author_name" validate:"required"`
	Body       string `json:"body"        validate:"required"`
	IsInternal bool   `json:"is_internal"`
}

func (h *ApprovalHandler) AddComment(c echo.Context) error {
	requestID := c.Param("request_id")
	if requestID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing request_id path param"})
	}
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.AddComment(c.Request().Context(), approval.CommentInput{
		RequestID:  requestID,
		AuthorID:   req.AuthorID,
		AuthorName: req.AuthorName,
		Body:       req.Body,
		IsInternal: req.IsInternal,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApprovalHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("request_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApprovalHandler) PendingForUser(c echo.Context) error {
	userID := c.Param("user_id")
	if !reHex32.MatchString(userID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
	}
	out, err := h.uc.PendingForUser(c.Request().Context(), userID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApprovalHandler) History(c echo.Context) error {
	out, err := h.uc.History(c.Request().Context(), c.QueryParam("document_type"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApprovalHandler) Overdue(c echo.Context) error {
	out, err := h.uc.Overdue(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApprovalHandler) Stats(c echo.Context) error {
	out, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
