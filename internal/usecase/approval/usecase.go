package approval

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"approval-router/internal/domain/delegation"
	"approval-router/internal/domain/request"
	"approval-router/internal/domain/rule"
	"approval-router/internal/domain/uow"
	"approval-router/pkg/id"
)

// AutoApproveLimit is the highest document amount a single-approver chain
// may self-approve without human action.
const AutoApproveLimit = 10000.0

type Usecase struct {
	rules       rule.Repository
	requests    request.Repository
	delegations delegation.Repository
	uow         uow.UnitOfWork
	log         *zap.Logger
}

// NewUsecase: direct repos serve the read paths, the UoW serves the
// read-modify-write flows.
func NewUsecase(rules rule.Repository, requests request.Repository, delegations delegation.Repository, tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{rules: rules, requests: requests, delegations: delegations, uow: tx, log: log}
}

// buildChain materializes one pending chain item per tier approver, in tier
// order. The requester's own slot is dropped when the tier has more than one
// approver; a sole approver who is also the requester keeps the slot so that
// low-tier self-approval flows work.
func buildChain(tier *rule.ApprovalTier, requesterID string) []request.ChainItem {
	chain := make([]request.ChainItem, 0, len(tier.Approvers))
	for _, a := range tier.Approvers {
		if a.UserID == requesterID && len(tier.Approvers) > 1 {
			continue
		}
		chain = append(chain, request.ChainItem{
			Level:        tier.Position,
			ApproverID:   a.UserID,
			ApproverName: a.UserName,
			Role:         a.Role,
			Status:       request.ItemPending,
			IsMandatory:  a.IsMandatory,
		})
	}
	return chain
}

func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*RequestDTO, error) {
	if !rule.ValidDocumentType(in.DocumentType) {
		return nil, fmt.Errorf("invalid document type %q", in.DocumentType)
	}
	dt := rule.DocumentType(in.DocumentType)

	var dto *RequestDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rl, err := r.Rules.GetActiveByDocumentType(ctx, dt)
		if err != nil {
			return rule.ErrNoRuleConfigured
		}
		tier := rl.ApplicableTier(in.Amount)
		if tier == nil {
			return fmt.Errorf("%w: %s %.2f", rule.ErrNoTierForAmount, dt, in.Amount)
		}

		now := time.Now().UTC()
		req := &request.ApprovalRequest{
			RequestID:      id.NewID32(),
			DocumentType:   dt,
			DocumentID:     in.DocumentID,
			DocumentNumber: in.DocumentNumber,
			Amount:         in.Amount,
			Currency:       in.Currency,
			RequesterID:    in.RequesterID,
			RequesterName:  in.RequesterName,
			RuleID:         rl.RuleID,
			TierID:         tier.ID,
			TierName:       tier.Name,
			CurrentLevel:   1,
			Status:         request.StatusPending,
			RequestedAt:    now,
			// DueAt is computed even when the request auto-approves below
			DueAt: now.Add(time.Duration(tier.SLAHours) * time.Hour),
			Chain: buildChain(tier, in.RequesterID),
		}

		if in.Amount <= AutoApproveLimit && len(req.Chain) == 1 && req.Chain[0].ApproverID == in.RequesterID {
			req.Status = request.StatusAutoApproved
			req.CompletedAt = &now
			req.Chain[0].Status = request.ItemAutoApproved
			req.Chain[0].ActionedAt = &now
			req.Chain[0].Comment = "Auto-approved: amount within self-approval limit"
			req.Comments = append(req.Comments, request.Comment{
				CommentID:  uuid.NewString(),
				AuthorID:   in.RequesterID,
				AuthorName: in.RequesterName,
				Body:       fmt.Sprintf("Auto-approved: single self-approver chain, amount %.2f within limit", in.Amount),
				IsInternal: true,
			})
		}

		if err := r.Requests.Create(ctx, req); err != nil {
			return err
		}
		dto = toRequestDTO(req)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("approval request submitted",
		zap.String("request_id", dto.RequestID),
		zap.String("document_type", dto.DocumentType),
		zap.Float64("amount", dto.Amount),
		zap.String("status", dto.Status))
	return dto, nil
}

// matchActionable finds the pending chain item the actor may act on, either
// directly or via an active delegation from the item's approver. The grant
// must also cover the request's document type and amount.
func matchActionable(ctx context.Context, r uow.Repos, req *request.ApprovalRequest, actorID string, now time.Time) (*request.ChainItem, *delegation.Delegation, error) {
	pending := req.PendingItems()
	for _, item := range pending {
		if item.ApproverID == actorID {
			return item, nil, nil
		}
	}
	for _, item := range pending {
		d, err := r.Delegations.FindActive(ctx, item.ApproverID, actorID, now)
		if err != nil {
			continue
		}
		if d.Covers(req.DocumentType, req.Amount) {
			return item, d, nil
		}
	}
	return nil, nil, request.ErrNotAuthorized
}

func (u *Usecase) Approve(ctx context.Context, in ActionInput) (*RequestDTO, error) {
	var dto *RequestDTO
	err := u.uow.WithinRequestTx(ctx, in.RequestID, func(r uow.Repos, req *request.ApprovalRequest) error {
		if !req.Status.Actionable() {
			return request.ErrNotPending
		}
		now := time.Now().UTC()
		item, deleg, err := matchActionable(ctx, r, req, in.ActorID, now)
		if err != nil {
			return err
		}

		if deleg != nil {
			// identity substitution: the slot now belongs to the delegate,
			// the original approver survives only in delegated_from
			item.DelegatedFromID = item.ApproverID
			item.DelegatedFromName = item.ApproverName
			item.ApproverID = in.ActorID
			item.ApproverName = deleg.ToUserName
		}
		item.Status = request.ItemApproved
		item.ActionedAt = &now
		item.Comment = in.Comment

		if req.AllDecided() {
			req.Status = request.StatusApproved
			req.CompletedAt = &now
		} else if rl, err := r.Rules.GetByRuleID(ctx, req.RuleID); err == nil {
			// advisory position counter only; nothing reads it as a gate
			if t := rl.TierByID(req.TierID); t != nil && t.RequiresSequential {
				req.CurrentLevel++
			}
		}

		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}
		dto = toRequestDTO(req)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("approval recorded",
		zap.String("request_id", in.RequestID),
		zap.String("actor_id", in.ActorID),
		zap.String("status", dto.Status))
	return dto, nil
}

func (u *Usecase) Reject(ctx context.Context, in ActionInput) (*RequestDTO, error) {
	var dto *RequestDTO
	err := u.uow.WithinRequestTx(ctx, in.RequestID, func(r uow.Repos, req *request.ApprovalRequest) error {
		if !req.Status.Actionable() {
			return request.ErrNotPending
		}
		now := time.Now().UTC()
		item, deleg, err := matchActionable(ctx, r, req, in.ActorID, now)
		if err != nil {
			return err
		}

		if deleg != nil {
			item.DelegatedFromID = item.ApproverID
			item.DelegatedFromName = item.ApproverName
			item.ApproverID = in.ActorID
			item.ApproverName = deleg.ToUserName
		}
		item.Status = request.ItemRejected
		item.ActionedAt = &now
		item.Comment = in.Comment

		// one rejection closes the whole request; sibling pending items are
		// left as-is in the data, the terminal status makes them moot
		req.Status = request.StatusRejected
		req.CompletedAt = &now

		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}
		dto = toRequestDTO(req)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("rejection recorded",
		zap.String("request_id", in.RequestID),
		zap.String("actor_id", in.ActorID))
	return dto, nil
}

func (u *Usecase) Escalate(ctx context.Context, in EscalateInput) (*RequestDTO, error) {
	var dto *RequestDTO
	err := u.uow.WithinRequestTx(ctx, in.RequestID, func(r uow.Repos, req *request.ApprovalRequest) error {
		if !req.Status.Actionable() {
			return request.ErrNotPending
		}
		rl, err := r.Rules.GetByRuleID(ctx, req.RuleID)
		if err != nil {
			return err
		}

		body := fmt.Sprintf("Escalation requested at tier %q: already at highest tier, no approvers added. Reason: %s", req.TierName, in.Reason)
		if next := rl.NextTier(req.TierID); next != nil {
			for _, a := range next.Approvers {
				req.Chain = append(req.Chain, request.ChainItem{
					Level:        next.Position,
					ApproverID:   a.UserID,
					ApproverName: a.UserName,
					Role:         a.Role,
					Status:       request.ItemPending,
					IsMandatory:  true,
				})
			}
			body = fmt.Sprintf("Escalated from tier %q to %q. Reason: %s", req.TierName, next.Name, in.Reason)
			req.TierID = next.ID
			req.TierName = next.Name
			req.Status = request.StatusEscalated
		}

		// the audit comment is appended whether or not a next tier existed
		req.Comments = append(req.Comments, request.Comment{
			CommentID:  uuid.NewString(),
			AuthorID:   in.ActorID,
			AuthorName: in.ActorName,
			Body:       body,
			IsInternal: true,
		})

		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}
		dto = toRequestDTO(req)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("escalation processed",
		zap.String("request_id", in.RequestID),
		zap.String("tier", dto.TierName),
		zap.String("status", dto.Status))
	return dto, nil
}

func (u *Usecase) AddComment(ctx context.Context, in CommentInput) (*RequestDTO, error) {
	var dto *RequestDTO
	err := u.uow.WithinRequestTx(ctx, in.RequestID, func(r uow.Repos, req *request.ApprovalRequest) error {
		req.Comments = append(req.Comments, request.Comment{
			CommentID:  uuid.NewString(),
			AuthorID:   in.AuthorID,
			AuthorName: in.AuthorName,
			Body:       in.Body,
			IsInternal: in.IsInternal,
		})
		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}
		dto = toRequestDTO(req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, requestID string) (*RequestDTO, error) {
	req, err := u.requests.GetByRequestID(ctx, requestID)
	if err != nil {
		return nil, request.ErrNotFound
	}
	return toRequestDTO(req), nil
}

// PendingForUser lists open requests with at least one pending slot the user
// may act on, directly or through a delegation naming them as delegate.
func (u *Usecase) PendingForUser(ctx context.Context, userID string) ([]RequestDTO, error) {
	now := time.Now().UTC()
	reqs, err := u.requests.ListActionable(ctx)
	if err != nil {
		return nil, err
	}
	grants, err := u.delegations.ListActiveTo(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	var out []RequestDTO
	for i := range reqs {
		if actionableBy(&reqs[i], userID, grants) {
			out = append(out, *toRequestDTO(&reqs[i]))
		}
	}
	return out, nil
}

func actionableBy(req *request.ApprovalRequest, userID string, grants []delegation.Delegation) bool {
	for _, item := range req.PendingItems() {
		if item.ApproverID == userID {
			return true
		}
		for j := range grants {
			if grants[j].FromUserID == item.ApproverID && grants[j].Covers(req.DocumentType, req.Amount) {
				return true
			}
		}
	}
	return false
}

// History lists terminal requests (approved, rejected or auto-approved),
// newest completion first. docType "" means all document types.
func (u *Usecase) History(ctx context.Context, docType string) ([]RequestDTO, error) {
	if docType != "" && !rule.ValidDocumentType(docType) {
		return nil, fmt.Errorf("invalid document type %q", docType)
	}
	reqs, err := u.requests.ListCompleted(ctx, rule.DocumentType(docType))
	if err != nil {
		return nil, err
	}
	out := make([]RequestDTO, 0, len(reqs))
	for i := range reqs {
		out = append(out, *toRequestDTO(&reqs[i]))
	}
	return out, nil
}

// Overdue reports open requests past their SLA deadline. Reporting only, no
// state transition ever happens on this path.
func (u *Usecase) Overdue(ctx context.Context) ([]RequestDTO, error) {
	reqs, err := u.requests.ListOverdue(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	out := make([]RequestDTO, 0, len(reqs))
	for i := range reqs {
		out = append(out, *toRequestDTO(&reqs[i]))
	}
	return out, nil
}

func (u *Usecase) Stats(ctx context.Context) (*Statistics, error) {
	reqs, err := u.requests.List(ctx)
	if err != nil {
		return nil, err
	}

	s := &Statistics{
		Total:          len(reqs),
		ByStatus:       map[string]int{},
		ByDocumentType: map[string]int{},
		PendingByTier:  map[string]int{},
	}
	var completed, withinSLA int
	var totalHours float64
	for i := range reqs {
		r := &reqs[i]
		s.ByStatus[string(r.Status)]++
		s.ByDocumentType[string(r.DocumentType)]++
		if r.Status.Actionable() {
			s.PendingByTier[r.TierName]++
		}
		if r.CompletedAt != nil {
			completed++
			totalHours += r.CompletedAt.Sub(r.RequestedAt).Hours()
			if r.MetSLA() {
				withinSLA++
			}
		}
	}
	if completed > 0 {
		s.AvgApprovalHours = totalHours / float64(completed)
		s.SLACompliancePct = 100 * float64(withinSLA) / float64(completed)
	}
	return s, nil
}

func toRequestDTO(r *request.ApprovalRequest) *RequestDTO {
	dto := &RequestDTO{
		RequestID:      r.RequestID,
		DocumentType:   string(r.DocumentType),
		DocumentID:     r.DocumentID,
		DocumentNumber: r.DocumentNumber,
		Amount:         r.Amount,
		Currency:       r.Currency,
		RequesterID:    r.RequesterID,
		RequesterName:  r.RequesterName,
		TierName:       r.TierName,
		CurrentLevel:   r.CurrentLevel,
		Status:         string(r.Status),
		RequestedAt:    r.RequestedAt,
		DueAt:          r.DueAt,
		CompletedAt:    r.CompletedAt,
	}
	for _, c := range r.Chain {
		dto.Chain = append(dto.Chain, ChainItemDTO{
			Level:             c.Level,
			ApproverID:        c.ApproverID,
			ApproverName:      c.ApproverName,
			Role:              c.Role,
			Status:            string(c.Status),
			IsMandatory:       c.IsMandatory,
			DelegatedFromID:   c.DelegatedFromID,
			DelegatedFromName: c.DelegatedFromName,
			ActionedAt:        c.ActionedAt,
			Comment:           c.Comment,
		})
	}
	for _, c := range r.Comments {
		dto.Comments = append(dto.Comments, CommentDTO{
			CommentID:  c.CommentID,
			AuthorID:   c.AuthorID,
			AuthorName: c.AuthorName,
			Body:       c.Body,
			IsInternal: c.IsInternal,
			CreatedAt:  c.CreatedAt,
		})
	}
	return dto
}
