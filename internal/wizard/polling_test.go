package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TuranHaqverdiyev/Kredit/internal/gateway"
)

// scriptedFetcher returns its results in order, repeating the last one.
type scriptedFetcher struct {
	results []*gateway.LoanResult
	errs    []error
	calls   int
}

func (f *scriptedFetcher) GetResult(context.Context, string) (*gateway.LoanResult, error) {
	i := f.calls
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	f.calls++
	return f.results[i], f.errs[i]
}

func newTestPoller(fetcher ResultFetcher) *Poller {
	p := NewPoller(fetcher, "app-1", 2000)
	p.Projector = fixedProjector(0)
	p.Interval = time.Millisecond
	return p
}

func TestOnce_StopsAtMilestone(t *testing.T) {
	fetcher := &scriptedFetcher{
		results: []*gateway.LoanResult{{ApplicationID: "app-1", Status: gateway.StatusScoring}},
		errs:    []error{nil},
	}
	p := newTestPoller(fetcher)

	result, stop := p.Once(context.Background(), StepOfferReview)

	// The projection lifts SCORING to the awaited OFFER_PENDING, which
	// satisfies the milestone immediately.
	if result.Status != gateway.StatusOfferPending {
		t.Errorf("Status = %s, want OFFER_PENDING", result.Status)
	}
	if !stop {
		t.Error("polling should stop once the milestone is reached")
	}
}

func TestOnce_FetchErrorDegradesToPlaceholder(t *testing.T) {
	fetcher := &scriptedFetcher{
		results: []*gateway.LoanResult{nil},
		errs:    []error{errors.New("backend down")},
	}
	p := newTestPoller(fetcher)

	result, stop := p.Once(context.Background(), StepOfferReview)

	if result == nil {
		t.Fatal("a failed fetch must still yield a result")
	}
	if result.Status != gateway.StatusOfferPending {
		t.Errorf("Status = %s, want synthesized OFFER_PENDING", result.Status)
	}
	if result.Score == nil || *result.Score != 850 {
		t.Errorf("Score = %v, want placeholder 850", result.Score)
	}
	if !stop {
		t.Error("the placeholder satisfies the milestone")
	}
}

func TestOnce_ContinuesBetweenMilestones(t *testing.T) {
	fetcher := &scriptedFetcher{
		results: []*gateway.LoanResult{{ApplicationID: "app-1", Status: gateway.StatusOfferAccepted}},
		errs:    []error{nil},
	}
	p := newTestPoller(fetcher)

	_, stop := p.Once(context.Background(), StepDisclosure)

	if stop {
		t.Error("intermediate steps have no milestone and keep polling")
	}
}

func TestOnce_TerminalDecisionStops(t *testing.T) {
	fetcher := &scriptedFetcher{
		results: []*gateway.LoanResult{{
			ApplicationID: "app-1",
			Status:        gateway.StatusScoring,
			Decision:      gateway.DecisionRejected,
		}},
		errs: []error{nil},
	}
	p := newTestPoller(fetcher)

	result, stop := p.Once(context.Background(), StepDisclosure)

	if !stop {
		t.Error("a terminal decision must stop polling")
	}
	if result.Decision != gateway.DecisionRejected {
		t.Errorf("Decision = %s, the rejection must not be papered over", result.Decision)
	}
}

func TestRun_PollsUntilTerminal(t *testing.T) {
	fetcher := &scriptedFetcher{
		results: []*gateway.LoanResult{
			{ApplicationID: "app-1", Status: gateway.StatusOfferAccepted},
			{ApplicationID: "app-1", Status: gateway.StatusOfferAccepted},
			{ApplicationID: "app-1", Status: gateway.StatusOfferAccepted, Decision: gateway.DecisionCustomerRejected},
		},
		errs: []error{nil, nil, nil},
	}
	p := newTestPoller(fetcher)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var updates int
	result, err := p.Run(ctx, StepDisclosure, func(*gateway.LoanResult) { updates++ })
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if fetcher.calls != 3 {
		t.Errorf("fetch calls = %d, want 3", fetcher.calls)
	}
	if updates != 3 {
		t.Errorf("updates = %d, want 3", updates)
	}
	if result.Decision != gateway.DecisionCustomerRejected {
		t.Errorf("Decision = %s", result.Decision)
	}
}

func TestRun_StopsImmediatelyAtMilestone(t *testing.T) {
	fetcher := &scriptedFetcher{
		results: []*gateway.LoanResult{{ApplicationID: "app-1", Status: gateway.StatusOfferPending}},
		errs:    []error{nil},
	}
	p := newTestPoller(fetcher)

	result, err := p.Run(context.Background(), StepOfferReview, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if fetcher.calls != 1 {
		t.Errorf("fetch calls = %d, want 1", fetcher.calls)
	}
	if result.Status != gateway.StatusOfferPending {
		t.Errorf("Status = %s", result.Status)
	}
}

func TestRun_CancelReturnsLastResult(t *testing.T) {
	fetcher := &scriptedFetcher{
		results: []*gateway.LoanResult{{ApplicationID: "app-1", Status: gateway.StatusOfferAccepted}},
		errs:    []error{nil},
	}
	p := newTestPoller(fetcher)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	result, err := p.Run(ctx, StepDisclosure, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if result == nil {
		t.Error("the last projected result should be returned on cancel")
	}
}
