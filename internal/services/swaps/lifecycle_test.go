package swaps

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Yash-01907/odoo-timepass/internal/models"
)

func validInput() ProposalInput {
	return ProposalInput{
		ProviderID:       uuid.New(),
		OfferedSkillID:   uuid.New(),
		RequestedSkillID: uuid.New(),
		Message:          "let's trade",
		ProposedDate:     time.Now().Add(48 * time.Hour),
		Duration:         1.5,
		Format:           models.FormatOnline,
	}
}

func TestValidateProposalOK(t *testing.T) {
	if err := ValidateProposal(validInput()); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
}

func TestValidateProposalRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ProposalInput)
	}{
		{"nil provider", func(in *ProposalInput) { in.ProviderID = uuid.Nil }},
		{"nil offered skill", func(in *ProposalInput) { in.OfferedSkillID = uuid.Nil }},
		{"nil requested skill", func(in *ProposalInput) { in.RequestedSkillID = uuid.Nil }},
		{"zero date", func(in *ProposalInput) { in.ProposedDate = time.Time{} }},
		{"duration too short", func(in *ProposalInput) { in.Duration = 0.25 }},
		{"duration too long", func(in *ProposalInput) { in.Duration = 8.5 }},
		{"unknown format", func(in *ProposalInput) { in.Format = "carrier-pigeon" }},
		{"in-person without location", func(in *ProposalInput) { in.Format = models.FormatInPerson }},
		{"hybrid without location", func(in *ProposalInput) { in.Format = models.FormatHybrid }},
		{"message too long", func(in *ProposalInput) { in.Message = strings.Repeat("x", 1001) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			if err := ValidateProposal(in); !errors.Is(err, ErrValidation) {
				t.Fatalf("got %v, want ErrValidation", err)
			}
		})
	}
}

func TestValidateProposalDurationBounds(t *testing.T) {
	for _, d := range []float64{0.5, 8} {
		in := validInput()
		in.Duration = d
		if err := ValidateProposal(in); err != nil {
			t.Errorf("duration %v should be accepted: %v", d, err)
		}
	}
}

func TestValidateProposalInPersonWithLocation(t *testing.T) {
	in := validInput()
	in.Format = models.FormatInPerson
	in.Location = "Central Library"
	if err := ValidateProposal(in); err != nil {
		t.Fatalf("in-person with location rejected: %v", err)
	}
}

func pendingSwap() (*models.Swap, uuid.UUID, uuid.UUID) {
	requester := uuid.New()
	provider := uuid.New()
	return &models.Swap{
		RequesterID: requester,
		ProviderID:  provider,
		Status:      models.SwapStatusPending,
	}, requester, provider
}

func TestGuardRespond(t *testing.T) {
	s, requester, provider := pendingSwap()

	if err := GuardRespond(s, provider, models.SwapStatusAccepted); err != nil {
		t.Fatalf("provider accept rejected: %v", err)
	}
	if err := GuardRespond(s, provider, models.SwapStatusRejected); err != nil {
		t.Fatalf("provider reject rejected: %v", err)
	}
	if err := GuardRespond(s, requester, models.SwapStatusAccepted); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("requester accept: got %v, want ErrNotAuthorized", err)
	}
	if err := GuardRespond(s, provider, models.SwapStatusCompleted); !errors.Is(err, ErrValidation) {
		t.Fatalf("respond with completed: got %v, want ErrValidation", err)
	}

	s.Status = models.SwapStatusAccepted
	if err := GuardRespond(s, provider, models.SwapStatusAccepted); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("respond on accepted swap: got %v, want ErrInvalidTransition", err)
	}
}

func TestGuardCancel(t *testing.T) {
	s, requester, provider := pendingSwap()
	admin := uuid.New()

	if err := GuardCancel(s, requester, false); err != nil {
		t.Fatalf("requester cancel rejected: %v", err)
	}
	if err := GuardCancel(s, provider, false); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("provider cancel: got %v, want ErrNotAuthorized", err)
	}
	if err := GuardCancel(s, admin, true); err != nil {
		t.Fatalf("admin cancel rejected: %v", err)
	}

	s.Status = models.SwapStatusAccepted
	if err := GuardCancel(s, requester, false); err != nil {
		t.Fatalf("cancel of accepted swap rejected: %v", err)
	}

	s.Status = models.SwapStatusCompleted
	if err := GuardCancel(s, requester, false); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("cancel of completed swap: got %v, want ErrInvalidTransition", err)
	}
}

func TestGuardComplete(t *testing.T) {
	s, requester, provider := pendingSwap()
	stranger := uuid.New()

	if err := GuardComplete(s, requester, false); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("complete of pending swap: got %v, want ErrInvalidTransition", err)
	}

	s.Status = models.SwapStatusAccepted
	if err := GuardComplete(s, requester, false); err != nil {
		t.Fatalf("requester complete rejected: %v", err)
	}
	if err := GuardComplete(s, provider, false); err != nil {
		t.Fatalf("provider complete rejected: %v", err)
	}
	if err := GuardComplete(s, stranger, false); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("stranger complete: got %v, want ErrNotAuthorized", err)
	}
	if err := GuardComplete(s, stranger, true); err != nil {
		t.Fatalf("admin complete rejected: %v", err)
	}

	// a completed swap cannot be completed again
	s.Status = models.SwapStatusCompleted
	if err := GuardComplete(s, requester, false); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("double complete: got %v, want ErrInvalidTransition", err)
	}
}
