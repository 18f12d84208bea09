package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TuranHaqverdiyev/Kredit/internal/gateway"
	"github.com/TuranHaqverdiyev/Kredit/internal/wizard"
)

// blockingGateway parks GenerateOTP until release is closed, keeping the
// backend call in flight for as long as the test needs.
type blockingGateway struct {
	release chan struct{}
}

func (g *blockingGateway) GenerateOTP(context.Context, gateway.GenerateOTPRequest) (*gateway.GenerateOTPResponse, error) {
	<-g.release
	return &gateway.GenerateOTPResponse{RequestID: "req-1", TTLSeconds: 120}, nil
}

func (g *blockingGateway) VerifyOTP(context.Context, gateway.VerifyOTPRequest) (*gateway.VerifyOTPResponse, error) {
	return &gateway.VerifyOTPResponse{}, nil
}

func (g *blockingGateway) ApplyToLoan(context.Context, gateway.ApplyToLoanRequest) (*gateway.ApplyToLoanResponse, error) {
	return &gateway.ApplyToLoanResponse{}, nil
}

func (g *blockingGateway) SubmitRequestedAmount(context.Context, string, gateway.SubmitAmountRequest) (*gateway.SubmitAmountResponse, error) {
	return &gateway.SubmitAmountResponse{}, nil
}

func (g *blockingGateway) AcceptOffer(context.Context, string) error { return nil }
func (g *blockingGateway) RejectOffer(context.Context, string) error { return nil }
func (g *blockingGateway) Finalize(context.Context, string) error    { return nil }

// staticFetcher always reports the same status.
type staticFetcher struct {
	status gateway.Status
}

func (f staticFetcher) GetResult(context.Context, string) (*gateway.LoanResult, error) {
	return &gateway.LoanResult{ApplicationID: "app-1", Status: f.status}, nil
}

// collectMsgs runs a command tree, expanding batches, and forwards every
// produced message.
func collectMsgs(cmd tea.Cmd, out chan<- tea.Msg) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			go collectMsgs(sub, out)
		}
		return
	}
	out <- msg
}

func newTestModel(gw wizard.Gateway, fetcher wizard.ResultFetcher) (AppModel, *wizard.Machine) {
	machine := wizard.NewMachine(gw, gateway.ChannelSMS, wizard.Optimistic)
	return NewAppModel(machine, fetcher, time.Millisecond), machine
}

// Rendering must stay safe while a backend call is in flight: the update
// loop and View read the snapshot, the operation goroutine owns the live
// session.
func TestView_RenderableWhileCallInFlight(t *testing.T) {
	gw := &blockingGateway{release: make(chan struct{})}
	m, machine := newTestModel(gw, staticFetcher{status: gateway.StatusScoring})
	m.FINInput.SetValue("7AB1234")
	m.PhoneInput.SetValue("501234567")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	inFlight := model.(AppModel)
	if !inFlight.Busy {
		t.Fatal("enter on the identity screen should mark the model busy")
	}
	if cmd == nil {
		t.Fatal("enter on the identity screen should start the OTP call")
	}

	msgs := make(chan tea.Msg, 8)
	go collectMsgs(cmd, msgs)

	stop := make(chan struct{})
	rendered := make(chan struct{})
	go func() {
		defer close(rendered)
		for {
			select {
			case <-stop:
				return
			default:
				_ = inFlight.View()
			}
		}
	}()

	close(gw.release)

	deadline := time.After(5 * time.Second)
	for {
		var msg tea.Msg
		select {
		case msg = <-msgs:
		case <-deadline:
			t.Fatal("timed out waiting for the operation to finish")
		}
		if _, ok := msg.(opDoneMsg); !ok {
			continue
		}
		close(stop)
		<-rendered

		model, _ = inFlight.Update(msg)
		after := model.(AppModel)
		if after.Busy {
			t.Error("model should not stay busy after the operation finished")
		}
		if machine.Session.Step != wizard.StepOTPVerify {
			t.Errorf("Step = %s, want otp_verify", machine.Session.Step)
		}
		if after.view.Step != wizard.StepOTPVerify {
			t.Errorf("snapshot Step = %s, want otp_verify", after.view.Step)
		}
		return
	}
}

// Finishing the video capture must restart polling even though the offer
// milestone already stopped an earlier cycle: the delivery screen waits for
// COMPLETED, not OFFER_PENDING.
func TestVideoKYC_RestartsPollingForDelivery(t *testing.T) {
	gw := &blockingGateway{release: make(chan struct{})}
	machine := wizard.NewMachine(gw, gateway.ChannelSMS, wizard.Optimistic)
	machine.Session.Step = wizard.StepVideoKYC
	machine.Session.ApplicationID = "app-1"
	machine.Session.Credentials.Set("tok-1")

	m := NewAppModel(machine, staticFetcher{status: gateway.StatusCompleted}, time.Millisecond)
	m.Recording = true
	m.CaptureLeft = 1
	m.PollDone = true
	m.PollStep = wizard.StepOfferReview

	model, cmd := m.Update(kycTickMsg{})
	after := model.(AppModel)
	if machine.Session.Step != wizard.StepDeliverySelect {
		t.Fatalf("Step = %s, want delivery_select", machine.Session.Step)
	}
	if cmd == nil {
		t.Fatal("finishing the capture should start a poll for the delivery milestone")
	}
	if !after.Polling {
		t.Error("Polling should be set while the fetch runs")
	}

	produced := cmd()
	msg, ok := produced.(pollResultMsg)
	if !ok {
		t.Fatalf("cmd produced %T, want pollResultMsg", produced)
	}
	if msg.step != wizard.StepDeliverySelect {
		t.Errorf("poll step = %s, want delivery_select", msg.step)
	}
	if !msg.done {
		t.Error("COMPLETED satisfies the delivery milestone, polling should stop")
	}

	model, _ = after.Update(msg)
	latched := model.(AppModel)
	if !latched.PollDone || latched.PollStep != wizard.StepDeliverySelect {
		t.Errorf("latch = (%v, %s), want (true, delivery_select)", latched.PollDone, latched.PollStep)
	}

	// The reached milestone belongs to this step; no further cycle starts.
	model, cmd = latched.Update(pollTickMsg{})
	if cmd != nil {
		t.Error("no new poll should start once the step's milestone is reached")
	}
	if model.(AppModel).Polling {
		t.Error("Polling should stay clear after the milestone")
	}
}

// Accepting the offer moves past the OFFER_PENDING milestone; the signing
// screens must watch the result again so a terminal rejection is seen.
func TestAcceptOffer_ResumesPollingPastOfferMilestone(t *testing.T) {
	gw := &blockingGateway{release: make(chan struct{})}
	machine := wizard.NewMachine(gw, gateway.ChannelSMS, wizard.Optimistic)
	machine.Session.Step = wizard.StepDisclosure
	machine.Session.ApplicationID = "app-1"
	machine.Session.Credentials.Set("tok-1")

	m := NewAppModel(machine, staticFetcher{status: gateway.StatusOfferAccepted}, time.Millisecond)
	m.Busy = true
	m.PollDone = true
	m.PollStep = wizard.StepOfferReview

	model, cmd := m.Update(opDoneMsg{})
	after := model.(AppModel)
	if cmd == nil {
		t.Fatal("entering the disclosure step should restart polling")
	}
	if !after.Polling {
		t.Error("Polling should be set while the fetch runs")
	}
}
