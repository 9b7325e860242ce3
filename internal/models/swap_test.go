package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestSwapStatusTransitions(t *testing.T) {
	cases := []struct {
		from SwapStatus
		to   SwapStatus
		ok   bool
	}{
		{SwapStatusPending, SwapStatusAccepted, true},
		{SwapStatusPending, SwapStatusRejected, true},
		{SwapStatusPending, SwapStatusCancelled, true},
		{SwapStatusPending, SwapStatusCompleted, false},
		{SwapStatusAccepted, SwapStatusCompleted, true},
		{SwapStatusAccepted, SwapStatusCancelled, true},
		{SwapStatusAccepted, SwapStatusRejected, false},
		{SwapStatusAccepted, SwapStatusPending, false},
		{SwapStatusRejected, SwapStatusAccepted, false},
		{SwapStatusCompleted, SwapStatusCompleted, false},
		{SwapStatusCancelled, SwapStatusPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestSwapStatusTerminal(t *testing.T) {
	terminal := map[SwapStatus]bool{
		SwapStatusPending:   false,
		SwapStatusAccepted:  false,
		SwapStatusRejected:  true,
		SwapStatusCompleted: true,
		SwapStatusCancelled: true,
	}
	for s, want := range terminal {
		if got := s.Terminal(); got != want {
			t.Errorf("Terminal(%s): got %v, want %v", s, got, want)
		}
	}
}

func TestValidSwapStatus(t *testing.T) {
	if !ValidSwapStatus(SwapStatusPending) {
		t.Error("pending should be valid")
	}
	if ValidSwapStatus("archived") {
		t.Error("archived should be invalid")
	}
}

func TestFormatRequiresLocation(t *testing.T) {
	if FormatOnline.RequiresLocation() {
		t.Error("online must not require a location")
	}
	if !FormatInPerson.RequiresLocation() {
		t.Error("in-person must require a location")
	}
	if !FormatHybrid.RequiresLocation() {
		t.Error("hybrid must require a location")
	}
}

func TestSwapParticipants(t *testing.T) {
	requester := uuid.New()
	provider := uuid.New()
	stranger := uuid.New()

	s := &Swap{RequesterID: requester, ProviderID: provider}

	if !s.IsParticipant(requester) || !s.IsParticipant(provider) {
		t.Fatal("both sides should be participants")
	}
	if s.IsParticipant(stranger) {
		t.Fatal("stranger should not be a participant")
	}

	if got := s.CounterpartyOf(requester); got != provider {
		t.Errorf("counterparty of requester: got %s, want %s", got, provider)
	}
	if got := s.CounterpartyOf(provider); got != requester {
		t.Errorf("counterparty of provider: got %s, want %s", got, requester)
	}
	if got := s.CounterpartyOf(stranger); got != uuid.Nil {
		t.Errorf("counterparty of stranger: got %s, want nil", got)
	}
}
