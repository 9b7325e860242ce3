package ratings

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/Yash-01907/odoo-timepass/internal/models"
)

func TestRoundAverage(t *testing.T) {
	cases := []struct {
		scores []int
		want   float64
	}{
		{nil, 0},
		{[]int{}, 0},
		{[]int{5}, 5},
		{[]int{4, 5}, 4.5},
		{[]int{3, 4, 5}, 4},
		{[]int{1, 2}, 1.5},
		{[]int{5, 5, 4}, 4.7}, // 4.666... rounds up
		{[]int{1, 1, 2}, 1.3}, // 1.333... rounds down
	}

	for _, tc := range cases {
		if got := RoundAverage(tc.scores); got != tc.want {
			t.Errorf("RoundAverage(%v): got %v, want %v", tc.scores, got, tc.want)
		}
	}
}

func validRatingInput() Input {
	return Input{
		SwapID:          uuid.New(),
		RateeID:         uuid.New(),
		Score:           4,
		Feedback:        "great session",
		Communication:   5,
		Punctuality:     4,
		SkillQuality:    4,
		Professionalism: 5,
	}
}

func TestInputValidate(t *testing.T) {
	if err := validRatingInput().Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Input)
	}{
		{"nil swap", func(in *Input) { in.SwapID = uuid.Nil }},
		{"nil ratee", func(in *Input) { in.RateeID = uuid.Nil }},
		{"score too low", func(in *Input) { in.Score = 0 }},
		{"score too high", func(in *Input) { in.Score = 6 }},
		{"bad communication", func(in *Input) { in.Communication = 0 }},
		{"bad punctuality", func(in *Input) { in.Punctuality = 6 }},
		{"bad skill quality", func(in *Input) { in.SkillQuality = -1 }},
		{"bad professionalism", func(in *Input) { in.Professionalism = 0 }},
		{"feedback too long", func(in *Input) { in.Feedback = strings.Repeat("x", 1001) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRatingInput()
			tc.mutate(&in)
			if err := in.Validate(); !errors.Is(err, ErrValidation) {
				t.Fatalf("got %v, want ErrValidation", err)
			}
		})
	}
}

func TestGuardCreate(t *testing.T) {
	requester := uuid.New()
	provider := uuid.New()
	stranger := uuid.New()

	swap := &models.Swap{
		RequesterID: requester,
		ProviderID:  provider,
		Status:      models.SwapStatusCompleted,
	}

	if err := GuardCreate(swap, requester, provider); err != nil {
		t.Fatalf("requester rating provider rejected: %v", err)
	}
	if err := GuardCreate(swap, provider, requester); err != nil {
		t.Fatalf("provider rating requester rejected: %v", err)
	}
	if err := GuardCreate(swap, stranger, provider); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("stranger rating: got %v, want ErrNotParticipant", err)
	}
	if err := GuardCreate(swap, requester, requester); !errors.Is(err, ErrInvalidRatee) {
		t.Fatalf("self rating: got %v, want ErrInvalidRatee", err)
	}
	if err := GuardCreate(swap, requester, stranger); !errors.Is(err, ErrInvalidRatee) {
		t.Fatalf("rating a non-party: got %v, want ErrInvalidRatee", err)
	}

	for _, status := range []models.SwapStatus{
		models.SwapStatusPending,
		models.SwapStatusAccepted,
		models.SwapStatusRejected,
		models.SwapStatusCancelled,
	} {
		swap.Status = status
		if err := GuardCreate(swap, requester, provider); !errors.Is(err, ErrSwapNotCompleted) {
			t.Fatalf("rating %s swap: got %v, want ErrSwapNotCompleted", status, err)
		}
	}
}
