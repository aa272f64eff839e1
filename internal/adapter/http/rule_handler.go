package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"approval-router/internal/usecase/rule"
)

type RuleHandler struct{ uc *rule.Usecase }

func NewRuleHandler(uc *rule.Usecase) *RuleHandler { return &RuleHandler{uc: uc} }

type approverReq struct {
	UserID       string `json:"user_id"        validate:"required,hex32"`
	UserName     string `json:"user_name"      validate:"required"`
	Role         string `json:"role"`
	IsMandatory  bool   `json:"is_mandatory"`
	CanDelegate  bool   `json:"can_delegate"`
	DelegateToID string `json:"delegate_to_id" validate:"omitempty,hex32"`
}

type tierReq struct {
	Name               string        `json:"name"                validate:"required"`
	MinAmount          float64       `json:"min_amount"          validate:"gte=0,dec2"`
	MaxAmount          float64       `json:"max_amount"          validate:"gte=0,dec2"`
	SLAHours           int           `json:"sla_hours"           validate:"required,gt=0"`
	EscalationHours    int           `json:"escalation_hours"    validate:"gte=0"`
	RequiresSequential bool          `json:"requires_sequential"`
	MinimumApprovers   int           `json:"minimum_approvers"   validate:"gte=0"`
	Approvers          []approverReq `json:"approvers"           validate:"required,min=1,dive"`
}

type ruleReq struct {
	Name         string    `json:"name"          validate:"required"`
	DocumentType string    `json:"document_type" validate:"required,doctype"`
	IsActive     bool      `json:"is_active"`
	Tiers        []tierReq `json:"tiers"         validate:"required,min=1,dive"`
}

func (rr ruleReq) toInput() rule.RuleInput {
	in := rule.RuleInput{
		Name:         rr.Name,
		DocumentType: rr.DocumentType,
		IsActive:     rr.IsActive,
	}
	for _, t := range rr.Tiers {
		tier := rule.TierInput{
			Name:               t.Name,
			MinAmount:          t.MinAmount,
			MaxAmount:          t.MaxAmount,
			SLAHours:           t.SLAHours,
			EscalationHours:    t.EscalationHours,
			RequiresSequential: t.RequiresSequential,
			MinimumApprovers:   t.MinimumApprovers,
		}
		for _, a := range t.Approvers {
			tier.Approvers = append(tier.Approvers, rule.ApproverInput(a))
		}
		in.Tiers = append(in.Tiers, tier)
	}
	return in
}

func (h *RuleHandler) Create(c echo.Context) error {
	var req ruleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *RuleHandler) Update(c echo.Context) error {
	ruleID := c.Param("rule_id")
	if ruleID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing rule_id path param"})
	}
	var req ruleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Update(c.Request().Context(), ruleID, req.toInput())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type ruleActiveReq struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func (h *RuleHandler) SetActive(c echo.Context) error {
	var req ruleActiveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.SetActive(c.Request().Context(), c.Param("rule_id"), *req.IsActive)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RuleHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("rule_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RuleHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
