package gateway

import "testing"

func TestStatusRank_Ordering(t *testing.T) {
	ordered := []Status{
		StatusOTPPending,
		StatusOTPVerified,
		StatusInfoSubmitted,
		StatusAmountSubmitted,
		StatusScoring,
		StatusOfferPending,
		StatusOfferAccepted,
		StatusPendingCRM,
		StatusCompleted,
	}

	for i := 1; i < len(ordered); i++ {
		if ordered[i].Rank() <= ordered[i-1].Rank() {
			t.Errorf("Rank(%s)=%d should be greater than Rank(%s)=%d",
				ordered[i], ordered[i].Rank(), ordered[i-1], ordered[i-1].Rank())
		}
	}
}

func TestStatusRank_AcceptedAndRejectedShareMilestone(t *testing.T) {
	if StatusOfferAccepted.Rank() != StatusOfferRejected.Rank() {
		t.Errorf("OFFER_ACCEPTED rank %d and OFFER_REJECTED rank %d should be equal",
			StatusOfferAccepted.Rank(), StatusOfferRejected.Rank())
	}
}

func TestStatusAtLeast(t *testing.T) {
	tests := []struct {
		status    Status
		milestone Status
		want      bool
	}{
		{StatusOfferPending, StatusOfferPending, true},
		{StatusOfferAccepted, StatusOfferPending, true},
		{StatusScoring, StatusOfferPending, false},
		{StatusCompleted, StatusCompleted, true},
		{StatusPendingCRM, StatusCompleted, false},
		{StatusOTPPending, StatusOfferPending, false},
	}

	for _, tt := range tests {
		if got := tt.status.AtLeast(tt.milestone); got != tt.want {
			t.Errorf("%s.AtLeast(%s) = %v, want %v", tt.status, tt.milestone, got, tt.want)
		}
	}
}

func TestStatusAtLeast_Unknown(t *testing.T) {
	if Status("SOMETHING_NEW").AtLeast(StatusOfferPending) {
		t.Error("unknown status must never satisfy a milestone")
	}
}

func TestDecisionTerminal(t *testing.T) {
	tests := []struct {
		decision Decision
		want     bool
	}{
		{DecisionRejected, true},
		{DecisionCustomerRejected, true},
		{DecisionApproved, false},
		{DecisionManualReview, false},
		{DecisionPending, false},
		{Decision(""), false},
	}

	for _, tt := range tests {
		if got := tt.decision.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal() = %v, want %v", tt.decision, got, tt.want)
		}
	}
}
