package wizard

import (
	"context"
	"time"

	"github.com/TuranHaqverdiyev/Kredit/internal/gateway"
	"github.com/TuranHaqverdiyev/Kredit/internal/logging"
)

// ResultFetcher fetches the result resource. *gateway.Client satisfies it.
type ResultFetcher interface {
	GetResult(ctx context.Context, applicationID string) (*gateway.LoanResult, error)
}

// DefaultPollInterval is the fixed delay between result polls.
const DefaultPollInterval = time.Second

// Poller repeatedly fetches the application result at a fixed interval
// until the target milestone for the current step is reached or a terminal
// decision is seen. A failed fetch never aborts the loop: it degrades to a
// synthesized placeholder so the view always has something to show.
type Poller struct {
	Fetcher   ResultFetcher
	Projector *Projector
	Interval  time.Duration

	ApplicationID   string
	RequestedAmount float64
}

// NewPoller creates a poller with the default interval and projector.
func NewPoller(fetcher ResultFetcher, applicationID string, requestedAmount float64) *Poller {
	return &Poller{
		Fetcher:         fetcher,
		Projector:       NewProjector(),
		Interval:        DefaultPollInterval,
		ApplicationID:   applicationID,
		RequestedAmount: requestedAmount,
	}
}

// Once performs a single fetch-and-project cycle for the given step and
// reports whether polling should stop. Callers that own their own timer
// (the terminal UI drives polls from its tick loop) use this directly.
func (p *Poller) Once(ctx context.Context, step Step) (*gateway.LoanResult, bool) {
	raw, err := p.Fetcher.GetResult(ctx, p.ApplicationID)

	var projected *gateway.LoanResult
	if err != nil {
		logging.LogMaskedFailure("get-result", err)
		projected = p.Projector.Placeholder(p.ApplicationID, step, p.RequestedAmount)
	} else {
		projected = p.Projector.Project(raw, step, p.RequestedAmount)
	}

	logging.LogApplicationStatus(p.ApplicationID, string(projected.Status), string(projected.Decision))
	return projected, p.done(projected, step)
}

// done reports whether the projected result satisfies the step's milestone
// or carries a terminal decision.
func (p *Poller) done(result *gateway.LoanResult, step Step) bool {
	if result.Decision.Terminal() {
		return true
	}
	milestone := Milestone(step)
	return milestone != "" && result.Status.AtLeast(milestone)
}

// Run polls on a ticker until the milestone is reached, a terminal
// decision is seen, or ctx is cancelled. Each projected result is passed
// to onUpdate; the final one is also returned.
func (p *Poller) Run(ctx context.Context, step Step, onUpdate func(*gateway.LoanResult)) (*gateway.LoanResult, error) {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	result, stop := p.Once(ctx, step)
	if onUpdate != nil {
		onUpdate(result)
	}
	if stop {
		return result, nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-ticker.C:
			result, stop = p.Once(ctx, step)
			if onUpdate != nil {
				onUpdate(result)
			}
			if stop {
				return result, nil
			}
		}
	}
}
