package wizard

import (
	"testing"

	"github.com/TuranHaqverdiyev/Kredit/internal/gateway"
)

func fixedProjector(jitter float64) *Projector {
	return &Projector{Jitter: func() float64 { return jitter }}
}

func TestMilestone(t *testing.T) {
	tests := []struct {
		step Step
		want gateway.Status
	}{
		{StepIdentityEntry, ""},
		{StepAmountSelect, ""},
		{StepOfferReview, gateway.StatusOfferPending},
		{StepDisclosure, ""},
		{StepVideoKYC, ""},
		{StepDeliverySelect, gateway.StatusCompleted},
		{StepResult, gateway.StatusCompleted},
	}

	for _, tt := range tests {
		if got := Milestone(tt.step); got != tt.want {
			t.Errorf("Milestone(%s) = %q, want %q", tt.step, got, tt.want)
		}
	}
}

func TestProject_LiftsStatusToMilestone(t *testing.T) {
	raw := &gateway.LoanResult{
		ApplicationID: "app-1",
		Status:        gateway.StatusScoring,
	}

	got := fixedProjector(0).Project(raw, StepOfferReview, 2000)

	if got.Status != gateway.StatusOfferPending {
		t.Errorf("Status = %s, want OFFER_PENDING while awaiting the offer", got.Status)
	}
	if got.Decision != gateway.DecisionApproved {
		t.Errorf("Decision = %s, want APPROVED", got.Decision)
	}
	// Raw result untouched
	if raw.Status != gateway.StatusScoring {
		t.Error("Project must not mutate the raw result")
	}
}

func TestProject_KeepsStatusAtOrPastMilestone(t *testing.T) {
	raw := &gateway.LoanResult{
		ApplicationID: "app-1",
		Status:        gateway.StatusOfferAccepted,
	}

	got := fixedProjector(0).Project(raw, StepOfferReview, 2000)

	if got.Status != gateway.StatusOfferAccepted {
		t.Errorf("Status = %s, want the real status once past the milestone", got.Status)
	}
}

func TestProject_SmallAmountKeptWhole(t *testing.T) {
	raw := &gateway.LoanResult{ApplicationID: "app-1", Status: gateway.StatusOfferPending}

	got := fixedProjector(0).Project(raw, StepOfferReview, 2000)

	if *got.ApprovedAmount != 2000 {
		t.Errorf("ApprovedAmount = %v, want 2000 (no counteroffer below threshold)", *got.ApprovedAmount)
	}
	if *got.APR != 12.0 {
		t.Errorf("APR = %v, want base 12.0", *got.APR)
	}
}

func TestProject_LargeAmountCounteroffered(t *testing.T) {
	raw := &gateway.LoanResult{ApplicationID: "app-1", Status: gateway.StatusOfferPending}

	// jitter 0 gives the minimum rate bump of 1 point
	got := fixedProjector(0).Project(raw, StepOfferReview, 5000)

	if *got.ApprovedAmount != 4750 {
		t.Errorf("ApprovedAmount = %v, want 4750 (5%% haircut)", *got.ApprovedAmount)
	}
	if *got.APR != 13.0 {
		t.Errorf("APR = %v, want 13.0", *got.APR)
	}

	// jitter 1 gives the maximum bump of 4 points
	got = fixedProjector(1).Project(raw, StepOfferReview, 5000)
	if *got.APR != 16.0 {
		t.Errorf("APR = %v, want 16.0 at max jitter", *got.APR)
	}
}

func TestProject_PrefersBackendFigures(t *testing.T) {
	amount := 2500.0
	apr := 15.5
	raw := &gateway.LoanResult{
		ApplicationID:  "app-1",
		Status:         gateway.StatusOfferPending,
		ApprovedAmount: &amount,
		APR:            &apr,
	}

	got := fixedProjector(0).Project(raw, StepOfferReview, 9999)

	if *got.ApprovedAmount != 2500 {
		t.Errorf("ApprovedAmount = %v, want backend's 2500", *got.ApprovedAmount)
	}
	if *got.APR != 15.5 {
		t.Errorf("APR = %v, want backend's 15.5", *got.APR)
	}
}

func TestPlaceholder_Fields(t *testing.T) {
	got := fixedProjector(0).Placeholder("app-1", StepOfferReview, 5000)

	if got.ApplicationID != "app-1" {
		t.Errorf("ApplicationID = %s", got.ApplicationID)
	}
	if got.Status != gateway.StatusOfferPending {
		t.Errorf("Status = %s, want OFFER_PENDING", got.Status)
	}
	if got.Decision != gateway.DecisionApproved {
		t.Errorf("Decision = %s, want APPROVED", got.Decision)
	}
	if *got.ApprovedAmount != 4750 {
		t.Errorf("ApprovedAmount = %v, want 4750", *got.ApprovedAmount)
	}
	// Placeholder rate bump is the fixed midpoint, not jittered
	if *got.APR != 14.5 {
		t.Errorf("APR = %v, want 14.5", *got.APR)
	}
	if got.Score == nil || *got.Score != 850 {
		t.Errorf("Score = %v, want 850", got.Score)
	}
	if len(got.ReasonCodes) != 2 || got.ReasonCodes[0] != "MOCK_SUCCESS" || got.ReasonCodes[1] != "PRE_APPROVED" {
		t.Errorf("ReasonCodes = %v", got.ReasonCodes)
	}
}

func TestPlaceholder_StatusByStep(t *testing.T) {
	p := fixedProjector(0)

	tests := []struct {
		step Step
		want gateway.Status
	}{
		{StepAmountSelect, gateway.StatusScoring},
		{StepOfferReview, gateway.StatusOfferPending},
		{StepDisclosure, gateway.StatusOfferPending},
		{StepContractSign, gateway.StatusOfferPending},
		{StepVideoKYC, gateway.StatusOfferPending},
		{StepDeliverySelect, gateway.StatusCompleted},
		{StepResult, gateway.StatusCompleted},
	}

	for _, tt := range tests {
		got := p.Placeholder("app-1", tt.step, 1000)
		if got.Status != tt.want {
			t.Errorf("Placeholder at %s: Status = %s, want %s", tt.step, got.Status, tt.want)
		}
	}
}
