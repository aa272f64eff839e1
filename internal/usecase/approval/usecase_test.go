package approval

import (
	"context"
	"errors"
	"testing"
	"time"

	delegationDomain "approval-router/internal/domain/delegation"
	requestDomain "approval-router/internal/domain/request"
	ruleDomain "approval-router/internal/domain/rule"
	"approval-router/internal/domain/uow"
	"approval-router/internal/testutil/delegationmock"
	"approval-router/internal/testutil/requestmock"
	"approval-router/internal/testutil/rulemock"
	"approval-router/internal/testutil/uowmock"
)

const (
	userAlice = "alice-proc-officer"
	userBob   = "bob-finance-ctrl"
	userCarol = "carol-finance-ctrl"
	userDave  = "dave-dept-manager"
	userErin  = "erin-procurement-head"
	userZara  = "zara-stand-in"
)

// threeTierRule mirrors a typical requisition policy: a self-service tier, a
// parallel finance tier and a sequential senior-management tier.
func threeTierRule() *ruleDomain.ApprovalRule {
	return &ruleDomain.ApprovalRule{
		ID:           1,
		RuleID:       "rule-requisition-default",
		Name:         "Requisition Default",
		DocumentType: ruleDomain.DocRequisition,
		IsActive:     true,
		Tiers: []ruleDomain.ApprovalTier{
			{
				ID: 11, RuleID: 1, Position: 1, Name: "Self Service",
				MinAmount: 0, MaxAmount: 50000, SLAHours: 8,
				Approvers: []ruleDomain.ApproverConfig{
					{UserID: userAlice, UserName: "Alice", Role: "procurement_officer", IsMandatory: true},
				},
			},
			{
				ID: 12, RuleID: 1, Position: 2, Name: "Finance Review",
				MinAmount: 50001, MaxAmount: 100000, SLAHours: 24,
				Approvers: []ruleDomain.ApproverConfig{
					{UserID: userBob, UserName: "Bob", Role: "finance_controller", IsMandatory: true},
					{UserID: userCarol, UserName: "Carol", Role: "finance_controller", IsMandatory: true},
				},
			},
			{
				ID: 13, RuleID: 1, Position: 3, Name: "Senior Management",
				MinAmount: 100001, MaxAmount: 500000, SLAHours: 48,
				RequiresSequential: true, MinimumApprovers: 2,
				Approvers: []ruleDomain.ApproverConfig{
					{UserID: userDave, UserName: "Dave", Role: "dept_manager", IsMandatory: true},
					{UserID: userErin, UserName: "Erin", Role: "procurement_head", IsMandatory: true},
				},
			},
		},
	}
}

// harness wires the usecase to an in-memory request store backed by the
// function mocks plus a passthrough UoW.
type harness struct {
	uc    *Usecase
	store map[string]*requestDomain.ApprovalRequest
}

func newHarness(rl *ruleDomain.ApprovalRule, grants []delegationDomain.Delegation) *harness {
	store := map[string]*requestDomain.ApprovalRequest{}

	rules := &rulemock.Repo{
		GetActiveByDocumentTypeFn: func(ctx context.Context, dt ruleDomain.DocumentType) (*ruleDomain.ApprovalRule, error) {
			if rl != nil && rl.DocumentType == dt && rl.IsActive {
				return rl, nil
			}
			return nil, ruleDomain.ErrNotFound
		},
		GetByRuleIDFn: func(ctx context.Context, ruleID string) (*ruleDomain.ApprovalRule, error) {
			if rl != nil && rl.RuleID == ruleID {
				return rl, nil
			}
			return nil, ruleDomain.ErrNotFound
		},
	}
	requests := &requestmock.Repo{
		CreateFn: func(ctx context.Context, r *requestDomain.ApprovalRequest) error {
			store[r.RequestID] = r
			return nil
		},
		SaveFn: func(ctx context.Context, r *requestDomain.ApprovalRequest) error {
			store[r.RequestID] = r
			return nil
		},
		GetByRequestIDFn: func(ctx context.Context, requestID string) (*requestDomain.ApprovalRequest, error) {
			if r, ok := store[requestID]; ok {
				return r, nil
			}
			return nil, requestDomain.ErrNotFound
		},
		GetByRequestIDForUpdateFn: func(ctx context.Context, requestID string) (*requestDomain.ApprovalRequest, error) {
			if r, ok := store[requestID]; ok {
				return r, nil
			}
			return nil, requestDomain.ErrNotFound
		},
		ListActionableFn: func(ctx context.Context) ([]requestDomain.ApprovalRequest, error) {
			var out []requestDomain.ApprovalRequest
			for _, r := range store {
				if r.Status.Actionable() {
					out = append(out, *r)
				}
			}
			return out, nil
		},
	}
	delegations := &delegationmock.Repo{
		FindActiveFn: func(ctx context.Context, from, to string, now time.Time) (*delegationDomain.Delegation, error) {
			for i := range grants {
				d := grants[i]
				if d.FromUserID == from && d.ToUserID == to && d.ActiveAt(now) {
					return &d, nil
				}
			}
			return nil, delegationDomain.ErrNotFound
		},
		ListActiveToFn: func(ctx context.Context, to string, now time.Time) ([]delegationDomain.Delegation, error) {
			var out []delegationDomain.Delegation
			for i := range grants {
				if grants[i].ToUserID == to && grants[i].ActiveAt(now) {
					out = append(out, grants[i])
				}
			}
			return out, nil
		},
	}

	repos := uow.Repos{Rules: rules, Requests: requests, Delegations: delegations}
	uc := NewUsecase(rules, requests, delegations, uowmock.Passthrough(repos), nil)
	return &harness{uc: uc, store: store}
}

func submitReq(amount float64, requesterID string) SubmitInput {
	return SubmitInput{
		DocumentType:   string(ruleDomain.DocRequisition),
		DocumentID:     "doc-001",
		DocumentNumber: "PR-2026-0001",
		Amount:         amount,
		Currency:       "USD",
		RequesterID:    requesterID,
		RequesterName:  "Requester",
	}
}

func TestSubmit_AutoApprovalBoundary(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		wantStatus string
	}{
		{"at limit auto-approves", 10000, "auto_approved"},
		{"one over limit stays pending", 10001, "pending"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(threeTierRule(), nil)
			dto, err := h.uc.Submit(context.Background(), submitReq(tt.amount, userAlice))
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if dto.Status != tt.wantStatus {
				t.Fatalf("status = %q, want %q", dto.Status, tt.wantStatus)
			}
			if len(dto.Chain) != 1 {
				t.Fatalf("chain length = %d, want 1", len(dto.Chain))
			}
			// DueAt is computed from the tier SLA even for auto-approved requests
			if got, want := dto.DueAt.Sub(dto.RequestedAt), 8*time.Hour; got != want {
				t.Fatalf("DueAt offset = %v, want %v", got, want)
			}
			if tt.wantStatus == "auto_approved" {
				if dto.CompletedAt == nil {
					t.Fatal("auto-approved request missing CompletedAt")
				}
				if dto.Chain[0].Status != "auto_approved" {
					t.Fatalf("chain item status = %q, want auto_approved", dto.Chain[0].Status)
				}
				if len(dto.Comments) == 0 {
					t.Fatal("auto-approved request missing audit comment")
				}
			} else if dto.CompletedAt != nil {
				t.Fatal("pending request must not have CompletedAt")
			}
		})
	}
}

func TestSubmit_SelfSkip(t *testing.T) {
	h := newHarness(threeTierRule(), nil)

	// multi-approver tier: Bob is both requester and one of two approvers
	dto, err := h.uc.Submit(context.Background(), submitReq(75000, userBob))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(dto.Chain) != 1 {
		t.Fatalf("chain length = %d, want 1 (requester slot skipped)", len(dto.Chain))
	}
	if dto.Chain[0].ApproverID != userCarol {
		t.Fatalf("remaining approver = %q, want %q", dto.Chain[0].ApproverID, userCarol)
	}

	// single-approver tier: Alice keeps her own slot
	dto, err = h.uc.Submit(context.Background(), submitReq(30000, userAlice))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(dto.Chain) != 1 || dto.Chain[0].ApproverID != userAlice {
		t.Fatalf("sole-approver chain = %+v, want Alice kept", dto.Chain)
	}
	if dto.Status != "pending" {
		t.Fatalf("status = %q, want pending (30000 over auto-approve limit)", dto.Status)
	}
}

func TestSubmit_ConfigurationErrors(t *testing.T) {
	t.Run("no rule for document type", func(t *testing.T) {
		h := newHarness(nil, nil)
		_, err := h.uc.Submit(context.Background(), submitReq(100, userAlice))
		if !errors.Is(err, ruleDomain.ErrNoRuleConfigured) {
			t.Fatalf("err = %v, want ErrNoRuleConfigured", err)
		}
	})
	t.Run("amount falls in tier gap", func(t *testing.T) {
		rl := threeTierRule()
		h := newHarness(rl, nil)
		_, err := h.uc.Submit(context.Background(), submitReq(50000.50, userAlice))
		if !errors.Is(err, ruleDomain.ErrNoTierForAmount) {
			t.Fatalf("err = %v, want ErrNoTierForAmount", err)
		}
	})
}

func TestApprove_AllApprovedCompletion(t *testing.T) {
	h := newHarness(threeTierRule(), nil)
	dto, err := h.uc.Submit(context.Background(), submitReq(75000, userAlice))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	first, err := h.uc.Approve(context.Background(), ActionInput{RequestID: dto.RequestID, ActorID: userBob, ActorName: "Bob", Comment: "ok"})
	if err != nil {
		t.Fatalf("first Approve: %v", err)
	}
	if first.Status != "pending" {
		t.Fatalf("status after first approval = %q, want pending", first.Status)
	}
	if first.CompletedAt != nil {
		t.Fatal("CompletedAt set after first of two approvals")
	}

	second, err := h.uc.Approve(context.Background(), ActionInput{RequestID: dto.RequestID, ActorID: userCarol, ActorName: "Carol"})
	if err != nil {
		t.Fatalf("second Approve: %v", err)
	}
	if second.Status != "approved" {
		t.Fatalf("status after second approval = %q, want approved", second.Status)
	}
	if second.CompletedAt == nil {
		t.Fatal("CompletedAt missing after full approval")
	}
}

func TestReject_Terminality(t *testing.T) {
	h := newHarness(threeTierRule(), nil)
	dto, err := h.uc.Submit(context.Background(), submitReq(75000, userAlice))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	rejected, err := h.uc.Reject(context.Background(), ActionInput{RequestID: dto.RequestID, ActorID: userBob, ActorName: "Bob", Comment: "over budget"})
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if rejected.Status != "rejected" {
		t.Fatalf("status = %q, want rejected", rejected.Status)
	}
	if rejected.CompletedAt == nil {
		t.Fatal("CompletedAt missing on rejection")
	}

	// sibling item stays pending in data, but the request is terminal
	var carolStatus string
	for _, item := range rejected.Chain {
		if item.ApproverID == userCarol {
			carolStatus = item.Status
		}
	}
	if carolStatus != "pending" {
		t.Fatalf("sibling item status = %q, want pending", carolStatus)
	}

	if _, err := h.uc.Approve(context.Background(), ActionInput{RequestID: dto.RequestID, ActorID: userCarol, ActorName: "Carol"}); !errors.Is(err, requestDomain.ErrNotPending) {
		t.Fatalf("Approve on rejected request: err = %v, want ErrNotPending", err)
	}
}

func TestApprove_NotAuthorized(t *testing.T) {
	h := newHarness(threeTierRule(), nil)
	dto, err := h.uc.Submit(context.Background(), submitReq(75000, userAlice))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := h.uc.Approve(context.Background(), ActionInput{RequestID: dto.RequestID, ActorID: userZara, ActorName: "Zara"}); !errors.Is(err, requestDomain.ErrNotAuthorized) {
		t.Fatalf("err = %v, want ErrNotAuthorized", err)
	}
}

func delegationWindow(from, to string, start, end time.Time) delegationDomain.Delegation {
	return delegationDomain.Delegation{
		DelegationID: "del-" + from + "-" + to,
		FromUserID:   from, FromUserName: from,
		ToUserID: to, ToUserName: "Zara",
		StartDate: start, EndDate: end, IsActive: true,
	}
}

func TestApprove_DelegationSubstitution(t *testing.T) {
	now := time.Now().UTC()

	t.Run("within window substitutes identity", func(t *testing.T) {
		grants := []delegationDomain.Delegation{
			delegationWindow(userBob, userZara, now.Add(-time.Hour), now.Add(time.Hour)),
		}
		h := newHarness(threeTierRule(), grants)
		dto, err := h.uc.Submit(context.Background(), submitReq(75000, userAlice))
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}

		out, err := h.uc.Approve(context.Background(), ActionInput{RequestID: dto.RequestID, ActorID: userZara, ActorName: "Zara"})
		if err != nil {
			t.Fatalf("Approve via delegation: %v", err)
		}
		var found bool
		for _, item := range out.Chain {
			if item.ApproverID == userZara {
				found = true
				if item.DelegatedFromID != userBob {
					t.Fatalf("DelegatedFromID = %q, want %q", item.DelegatedFromID, userBob)
				}
				if item.Status != "approved" {
					t.Fatalf("item status = %q, want approved", item.Status)
				}
			}
		}
		if !found {
			t.Fatalf("no chain item reassigned to delegate; chain: %+v", out.Chain)
		}
	})

	t.Run("outside window is not authorized", func(t *testing.T) {
		grants := []delegationDomain.Delegation{
			delegationWindow(userBob, userZara, now.Add(-48*time.Hour), now.Add(-24*time.Hour)),
		}
		h := newHarness(threeTierRule(), grants)
		dto, err := h.uc.Submit(context.Background(), submitReq(75000, userAlice))
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if _, err := h.uc.Approve(context.Background(), ActionInput{RequestID: dto.RequestID, ActorID: userZara}); !errors.Is(err, requestDomain.ErrNotAuthorized) {
			t.Fatalf("err = %v, want ErrNotAuthorized", err)
		}
	})

	t.Run("grant not covering the document type is not authorized", func(t *testing.T) {
		d := delegationWindow(userBob, userZara, now.Add(-time.Hour), now.Add(time.Hour))
		d.DocumentTypes = "invoice,contract"
		h := newHarness(threeTierRule(), []delegationDomain.Delegation{d})
		dto, err := h.uc.Submit(context.Background(), submitReq(75000, userAlice))
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if _, err := h.uc.Approve(context.Background(), ActionInput{RequestID: dto.RequestID, ActorID: userZara}); !errors.Is(err, requestDomain.ErrNotAuthorized) {
			t.Fatalf("err = %v, want ErrNotAuthorized", err)
		}
	})

	t.Run("grant below the document amount is not authorized", func(t *testing.T) {
		d := delegationWindow(userBob, userZara, now.Add(-time.Hour), now.Add(time.Hour))
		d.MaxAmount = 50000
		h := newHarness(threeTierRule(), []delegationDomain.Delegation{d})
		dto, err := h.uc.Submit(context.Background(), submitReq(75000, userAlice))
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if _, err := h.uc.Approve(context.Background(), ActionInput{RequestID: dto.RequestID, ActorID: userZara}); !errors.Is(err, requestDomain.ErrNotAuthorized) {
			t.Fatalf("err = %v, want ErrNotAuthorized", err)
		}
	})
}

func TestEscalate_GrowsChain(t *testing.T) {
	h := newHarness(threeTierRule(), nil)
	dto, err := h.uc.Submit(context.Background(), submitReq(75000, userAlice))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	out, err := h.uc.Escalate(context.Background(), EscalateInput{RequestID: dto.RequestID, ActorID: userBob, ActorName: "Bob", Reason: "urgent"})
	if err != nil {
		t.Fatalf("Escalate: %v", err)
	}
	if out.Status != "escalated" {
		t.Fatalf("status = %q, want escalated", out.Status)
	}
	if out.TierName != "Senior Management" {
		t.Fatalf("tier = %q, want Senior Management", out.TierName)
	}
	if len(out.Chain) != 4 {
		t.Fatalf("chain length = %d, want 4 (2 original + 2 escalated)", len(out.Chain))
	}
	for _, item := range out.Chain {
		if item.Level == 3 && !item.IsMandatory {
			t.Fatalf("escalated item not mandatory: %+v", item)
		}
	}
	if len(out.Comments) != 1 {
		t.Fatalf("comments = %d, want 1 escalation audit entry", len(out.Comments))
	}

	// escalated requests remain actionable
	if _, err := h.uc.Approve(context.Background(), ActionInput{RequestID: dto.RequestID, ActorID: userDave, ActorName: "Dave"}); err != nil {
		t.Fatalf("Approve after escalation: %v", err)
	}
}

func TestEscalate_CeilingTierIsCommentOnlyNoOp(t *testing.T) {
	h := newHarness(threeTierRule(), nil)
	dto, err := h.uc.Submit(context.Background(), submitReq(250000, userAlice))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	out, err := h.uc.Escalate(context.Background(), EscalateInput{RequestID: dto.RequestID, ActorID: userDave, ActorName: "Dave", Reason: "stuck"})
	if err != nil {
		t.Fatalf("Escalate: %v", err)
	}
	if out.Status != "pending" {
		t.Fatalf("status = %q, want pending (no structural escalation)", out.Status)
	}
	if out.TierName != "Senior Management" {
		t.Fatalf("tier changed to %q at ceiling", out.TierName)
	}
	if len(out.Chain) != 2 {
		t.Fatalf("chain length = %d, want 2 (unchanged)", len(out.Chain))
	}
	if len(out.Comments) != 1 {
		t.Fatalf("comments = %d, want 1 (audit comment still appended)", len(out.Comments))
	}
}

// End-to-end walk of the sequential senior-management tier.
func TestSequentialTier_EndToEnd(t *testing.T) {
	h := newHarness(threeTierRule(), nil)
	dto, err := h.uc.Submit(context.Background(), submitReq(250000, userAlice))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if dto.TierName != "Senior Management" {
		t.Fatalf("tier = %q, want Senior Management", dto.TierName)
	}
	if len(dto.Chain) != 2 {
		t.Fatalf("chain length = %d, want 2", len(dto.Chain))
	}
	for _, item := range dto.Chain {
		if item.Level != 3 || item.Status != "pending" {
			t.Fatalf("chain item = %+v, want pending at level 3", item)
		}
	}
	if dto.CurrentLevel != 1 {
		t.Fatalf("initial CurrentLevel = %d, want 1", dto.CurrentLevel)
	}

	mid, err := h.uc.Approve(context.Background(), ActionInput{RequestID: dto.RequestID, ActorID: userDave, ActorName: "Dave"})
	if err != nil {
		t.Fatalf("Approve by dept manager: %v", err)
	}
	if mid.Status != "pending" {
		t.Fatalf("status = %q, want pending after first approval", mid.Status)
	}
	if mid.CurrentLevel != 2 {
		t.Fatalf("CurrentLevel = %d, want 2 (sequential tier increments)", mid.CurrentLevel)
	}

	done, err := h.uc.Approve(context.Background(), ActionInput{RequestID: dto.RequestID, ActorID: userErin, ActorName: "Erin"})
	if err != nil {
		t.Fatalf("Approve by procurement head: %v", err)
	}
	if done.Status != "approved" || done.CompletedAt == nil {
		t.Fatalf("final status = %q (completed=%v), want approved with CompletedAt", done.Status, done.CompletedAt)
	}
}

func TestPendingForUser(t *testing.T) {
	now := time.Now().UTC()
	grants := []delegationDomain.Delegation{
		delegationWindow(userCarol, userZara, now.Add(-time.Hour), now.Add(time.Hour)),
	}
	h := newHarness(threeTierRule(), grants)
	dto, err := h.uc.Submit(context.Background(), submitReq(75000, userAlice))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	tests := []struct {
		user string
		want int
	}{
		{userBob, 1},  // direct approver
		{userZara, 1}, // delegate of Carol
		{userDave, 0}, // tier 3, not in chain
	}
	for _, tt := range tests {
		got, err := h.uc.PendingForUser(context.Background(), tt.user)
		if err != nil {
			t.Fatalf("PendingForUser(%s): %v", tt.user, err)
		}
		if len(got) != tt.want {
			t.Fatalf("PendingForUser(%s) = %d requests, want %d", tt.user, len(got), tt.want)
		}
	}

	// once terminal, the request leaves everyone's queue
	if _, err := h.uc.Reject(context.Background(), ActionInput{RequestID: dto.RequestID, ActorID: userBob}); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	got, err := h.uc.PendingForUser(context.Background(), userBob)
	if err != nil {
		t.Fatalf("PendingForUser: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("rejected request still pending for approver: %d", len(got))
	}
}

func TestStats_SLAComplianceArithmetic(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	within := base.Add(5 * time.Hour)
	late := base.Add(9 * time.Hour)

	reqs := []requestDomain.ApprovalRequest{
		{
			RequestID: "r1", DocumentType: ruleDomain.DocRequisition, TierName: "Finance Review",
			Status: requestDomain.StatusApproved, RequestedAt: base, DueAt: base.Add(8 * time.Hour), CompletedAt: &within,
		},
		{
			RequestID: "r2", DocumentType: ruleDomain.DocRequisition, TierName: "Finance Review",
			Status: requestDomain.StatusRejected, RequestedAt: base, DueAt: base.Add(8 * time.Hour), CompletedAt: &late,
		},
		{
			RequestID: "r3", DocumentType: ruleDomain.DocInvoice, TierName: "Self Service",
			Status: requestDomain.StatusPending, RequestedAt: base, DueAt: base.Add(8 * time.Hour),
		},
	}
	requests := &requestmock.Repo{
		ListFn: func(ctx context.Context) ([]requestDomain.ApprovalRequest, error) { return reqs, nil },
	}
	uc := NewUsecase(&rulemock.Repo{}, requests, &delegationmock.Repo{}, uowmock.New(), nil)

	s, err := uc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if s.Total != 3 {
		t.Fatalf("Total = %d, want 3", s.Total)
	}
	if s.ByStatus["approved"] != 1 || s.ByStatus["rejected"] != 1 || s.ByStatus["pending"] != 1 {
		t.Fatalf("ByStatus = %v", s.ByStatus)
	}
	if s.ByDocumentType["requisition"] != 2 || s.ByDocumentType["invoice"] != 1 {
		t.Fatalf("ByDocumentType = %v", s.ByDocumentType)
	}
	// (5h + 9h) / 2 completed requests
	if s.AvgApprovalHours != 7 {
		t.Fatalf("AvgApprovalHours = %v, want 7", s.AvgApprovalHours)
	}
	// T+5h within the 8h SLA counts, T+9h does not
	if s.SLACompliancePct != 50 {
		t.Fatalf("SLACompliancePct = %v, want 50", s.SLACompliancePct)
	}
	if s.PendingByTier["Self Service"] != 1 {
		t.Fatalf("PendingByTier = %v", s.PendingByTier)
	}
}

func TestHistory_RejectsUnknownDocumentType(t *testing.T) {
	uc := NewUsecase(&rulemock.Repo{}, &requestmock.Repo{}, &delegationmock.Repo{}, uowmock.New(), nil)
	if _, err := uc.History(context.Background(), "timesheet"); err == nil {
		t.Fatal("expected error for unknown document type")
	}
}

func TestAddComment_Appends(t *testing.T) {
	h := newHarness(threeTierRule(), nil)
	dto, err := h.uc.Submit(context.Background(), submitReq(75000, userAlice))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	out, err := h.uc.AddComment(context.Background(), CommentInput{
		RequestID: dto.RequestID, AuthorID: userBob, AuthorName: "Bob",
		Body: "need a second quote", IsInternal: true,
	})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if len(out.Comments) != 1 {
		t.Fatalf("comments = %d, want 1", len(out.Comments))
	}
	if out.Comments[0].CommentID == "" {
		t.Fatal("comment id not assigned")
	}
	if !out.Comments[0].IsInternal {
		t.Fatal("is_internal flag lost")
	}
}
