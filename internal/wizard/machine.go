package wizard

import (
	"context"
	"errors"

	"github.com/TuranHaqverdiyev/Kredit/internal/gateway"
	"github.com/TuranHaqverdiyev/Kredit/internal/logging"
)

// Entry-precondition violations. These mean the caller skipped a step, not
// that the applicant typed something wrong; no backend call is made.
var (
	ErrNoChallenge   = errors.New("Əvvəlcə OTP kodu tələb edin")
	ErrNotVerified   = errors.New("Əvvəlcə telefon nömrənizi təsdiqləyin")
	ErrNoApplication = errors.New("Əvvəlcə müraciəti başladın")
)

// Gateway is the backend surface the machine drives. *gateway.Client
// satisfies it; tests substitute a fake.
type Gateway interface {
	GenerateOTP(ctx context.Context, req gateway.GenerateOTPRequest) (*gateway.GenerateOTPResponse, error)
	VerifyOTP(ctx context.Context, req gateway.VerifyOTPRequest) (*gateway.VerifyOTPResponse, error)
	ApplyToLoan(ctx context.Context, req gateway.ApplyToLoanRequest) (*gateway.ApplyToLoanResponse, error)
	SubmitRequestedAmount(ctx context.Context, applicationID string, req gateway.SubmitAmountRequest) (*gateway.SubmitAmountResponse, error)
	AcceptOffer(ctx context.Context, applicationID string) error
	RejectOffer(ctx context.Context, applicationID string) error
	Finalize(ctx context.Context, applicationID string) error
}

// AdvancementPolicy decides what a failed backend call does to the wizard
// step on the late-stage transitions (amount submission, offer accept and
// reject, finalize).
type AdvancementPolicy int

const (
	// Optimistic masks the failure and advances anyway. The product
	// decision: never strand an applicant because the backend wobbled,
	// at the cost of the displayed state running ahead of backend truth.
	Optimistic AdvancementPolicy = iota

	// Strict keeps the applicant on the current step and surfaces the
	// error, for deployments that require backend confirmation.
	Strict
)

// Machine owns the wizard session and decides legal transitions. All
// mutating operations follow the same shape: validate locally, call the
// backend, then move the step. The session error string is replaced on
// every operation.
type Machine struct {
	Session *Session

	gw      Gateway
	policy  AdvancementPolicy
	channel gateway.Channel
}

// NewMachine creates a machine over a fresh session.
func NewMachine(gw Gateway, channel gateway.Channel, policy AdvancementPolicy) *Machine {
	return &Machine{
		Session: NewSession(nil),
		gw:      gw,
		policy:  policy,
		channel: channel,
	}
}

// advance moves the step and clears the error string.
func (m *Machine) advance(to Step) {
	logging.LogStepTransition(m.Session.Step.String(), to.String())
	m.Session.Step = to
	m.Session.Err = ""
}

// fail records the error string and keeps the step.
func (m *Machine) fail(err error) {
	m.Session.Err = gateway.UserMessage(err)
}

// SendOTP validates the identity inputs and requests an OTP challenge.
// On success the session holds the challenge handle and its TTL; identity
// inputs are frozen until BackToIdentity.
func (m *Machine) SendOTP(ctx context.Context) error {
	s := m.Session
	if err := ValidateFIN(s.LoginFIN); err != nil {
		m.fail(err)
		return err
	}
	if err := ValidatePhone(s.PhoneNumber); err != nil {
		m.fail(err)
		return err
	}

	resp, err := m.gw.GenerateOTP(ctx, gateway.GenerateOTPRequest{
		PhoneNumber: s.WirePhoneNumber(),
		Channel:     m.channel,
	})
	if err != nil {
		m.fail(err)
		return err
	}

	s.RequestID = resp.RequestID
	s.TTLSeconds = resp.TTLSeconds
	s.OTPSent = true
	m.advance(StepOTPVerify)
	return nil
}

// ResendOTP issues a fresh challenge. The previous requestId is replaced;
// a code sent against it will be rejected server-side.
func (m *Machine) ResendOTP(ctx context.Context) error {
	resp, err := m.gw.GenerateOTP(ctx, gateway.GenerateOTPRequest{
		PhoneNumber: m.Session.WirePhoneNumber(),
		Channel:     m.channel,
	})
	if err != nil {
		m.fail(err)
		return err
	}
	m.Session.RequestID = resp.RequestID
	m.Session.TTLSeconds = resp.TTLSeconds
	m.Session.Err = ""
	return nil
}

// BackToIdentity returns to the identity inputs, discarding the pending
// challenge state so the inputs become editable again.
func (m *Machine) BackToIdentity() {
	s := m.Session
	s.OTPSent = false
	s.RequestID = ""
	s.TTLSeconds = 0
	m.advance(StepIdentityEntry)
}

// VerifyOTP submits the received code. On success the bearer token is
// stored and the registry's personal data is merged into the session.
func (m *Machine) VerifyOTP(ctx context.Context, code string) error {
	s := m.Session
	if s.RequestID == "" {
		m.fail(ErrNoChallenge)
		return ErrNoChallenge
	}
	if err := ValidateOTPCode(code); err != nil {
		m.fail(err)
		return err
	}

	resp, err := m.gw.VerifyOTP(ctx, gateway.VerifyOTPRequest{
		PhoneNumber: s.WirePhoneNumber(),
		RequestID:   s.RequestID,
		OTPCode:     code,
	})
	if err != nil {
		m.fail(err)
		return err
	}

	s.Credentials.Set(resp.AccessToken)
	s.RequestID = "" // challenge consumed
	s.mergePersonalData(resp.PersonalData)
	m.advance(StepPersonalInfo)
	return nil
}

// SubmitPersonalInfo validates the personal fields and both consents, then
// creates the application. The server-assigned applicationId is the join
// key for every later call.
func (m *Machine) SubmitPersonalInfo(ctx context.Context) error {
	s := m.Session
	if !s.Credentials.Authenticated() {
		m.fail(ErrNotVerified)
		return ErrNotVerified
	}
	if err := ValidatePersonalInfo(s.PersonalInfo); err != nil {
		m.fail(err)
		return err
	}
	if err := ValidateConsent(s.TermsAccepted, s.PrivacyAccepted); err != nil {
		m.fail(err)
		return err
	}

	info := s.PersonalInfo
	resp, err := m.gw.ApplyToLoan(ctx, gateway.ApplyToLoanRequest{
		PhoneNumber:         s.WirePhoneNumber(),
		FirstName:           info.FirstName,
		LastName:            info.LastName,
		FIN:                 info.FIN,
		DateOfBirth:         info.DateOfBirth,
		EmploymentStatus:    info.EmploymentStatus,
		MonthlyIncome:       info.MonthlyIncome,
		ExistingMonthlyDebt: info.ExistingMonthlyDebt,
		Address:             info.Address,
		Consent: gateway.Consent{
			TermsAccepted:   s.TermsAccepted,
			PrivacyAccepted: s.PrivacyAccepted,
		},
	})
	if err != nil {
		m.fail(err)
		return err
	}

	s.ApplicationID = resp.ApplicationID
	m.advance(StepAmountSelect)
	return nil
}

// SubmitAmount submits the requested principal and term. Under the
// optimistic policy the step advances even when the call fails.
func (m *Machine) SubmitAmount(ctx context.Context) error {
	s := m.Session
	if s.ApplicationID == "" {
		m.fail(ErrNoApplication)
		return ErrNoApplication
	}
	if err := ValidateLoanRequest(s.LoanRequest); err != nil {
		m.fail(err)
		return err
	}

	_, err := m.gw.SubmitRequestedAmount(ctx, s.ApplicationID, gateway.SubmitAmountRequest{
		RequestedAmount: s.LoanRequest.Amount,
		TermMonths:      s.LoanRequest.TermMonths,
	})
	if err != nil {
		if m.policy == Strict {
			m.fail(err)
			return err
		}
		logging.LogMaskedFailure("submit-requested-amount", err)
	}

	m.advance(StepOfferReview)
	return nil
}

// AcceptOffer accepts the presented offer and moves to the disclosure
// step. Optimistic on failure, like SubmitAmount.
func (m *Machine) AcceptOffer(ctx context.Context) error {
	if m.Session.ApplicationID == "" {
		m.fail(ErrNoApplication)
		return ErrNoApplication
	}
	if err := m.gw.AcceptOffer(ctx, m.Session.ApplicationID); err != nil {
		if m.policy == Strict {
			m.fail(err)
			return err
		}
		logging.LogMaskedFailure("accept-offer", err)
	}
	m.advance(StepDisclosure)
	return nil
}

// RejectOffer declines the offer and abandons the wizard. The session is
// marked abandoned whether or not the backend call succeeded; the
// applicant has said no and must not be held.
func (m *Machine) RejectOffer(ctx context.Context) error {
	if m.Session.ApplicationID == "" {
		m.fail(ErrNoApplication)
		return ErrNoApplication
	}
	if err := m.gw.RejectOffer(ctx, m.Session.ApplicationID); err != nil {
		if m.policy == Strict {
			m.fail(err)
			return err
		}
		logging.LogMaskedFailure("reject-offer", err)
	}
	m.Session.Abandoned = true
	m.Session.Err = ""
	return nil
}

// ConfirmDisclosure acknowledges the information form. Local only.
func (m *Machine) ConfirmDisclosure() {
	m.advance(StepContractSign)
}

// SignContract records the contract acknowledgment and moves on. The
// caller must not invoke it until the applicant has checked the box.
func (m *Machine) SignContract() {
	m.Session.ContractSigned = true
	m.advance(StepVideoKYC)
}

// CompleteVideoKYC marks the capture done and moves to delivery selection.
// The capture itself is a fixed-duration simulation owned by the UI.
func (m *Machine) CompleteVideoKYC() {
	m.Session.KYCDone = true
	m.advance(StepDeliverySelect)
}

// Back steps to the previous screen where the flow allows it. Field values
// survive the round trip.
func (m *Machine) Back() {
	switch m.Session.Step {
	case StepOTPVerify:
		m.BackToIdentity()
	case StepContractSign:
		m.advance(StepDisclosure)
	case StepVideoKYC:
		m.advance(StepContractSign)
	}
}

// Finalize validates the delivery choice and completes the application.
// Under the optimistic policy the wizard reaches the result screen even
// when the call fails.
func (m *Machine) Finalize(ctx context.Context) error {
	s := m.Session
	if s.ApplicationID == "" {
		m.fail(ErrNoApplication)
		return ErrNoApplication
	}
	if err := ValidateDelivery(s.Delivery); err != nil {
		m.fail(err)
		return err
	}

	if err := m.gw.Finalize(ctx, s.ApplicationID); err != nil {
		if m.policy == Strict {
			m.fail(err)
			return err
		}
		logging.LogMaskedFailure("finalize", err)
	}

	m.advance(StepResult)
	return nil
}
