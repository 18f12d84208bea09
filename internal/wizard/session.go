package wizard

import (
	"github.com/TuranHaqverdiyev/Kredit/internal/gateway"
)

// Step identifies a wizard screen. Steps are ordered along the common path;
// Back is only legal where the corresponding screen offers it.
type Step int

const (
	StepIdentityEntry Step = iota
	StepOTPVerify
	StepPersonalInfo
	StepAmountSelect
	StepOfferReview
	StepDisclosure
	StepContractSign
	StepVideoKYC
	StepDeliverySelect
	StepResult
)

// String returns the step name for logging.
func (s Step) String() string {
	switch s {
	case StepIdentityEntry:
		return "identity_entry"
	case StepOTPVerify:
		return "otp_verify"
	case StepPersonalInfo:
		return "personal_info"
	case StepAmountSelect:
		return "amount_select"
	case StepOfferReview:
		return "offer_review"
	case StepDisclosure:
		return "disclosure"
	case StepContractSign:
		return "contract_sign"
	case StepVideoKYC:
		return "video_kyc"
	case StepDeliverySelect:
		return "delivery_select"
	case StepResult:
		return "result"
	default:
		return "unknown"
	}
}

// DeliveryMethod is how the disbursed funds reach the applicant.
type DeliveryMethod string

const (
	DeliveryCard    DeliveryMethod = "CARD"
	DeliveryBranch  DeliveryMethod = "BRANCH"
	DeliveryCourier DeliveryMethod = "COURIER"
)

// Delivery holds the chosen disbursement method and its detail field.
// Exactly one detail is meaningful, matching the method.
type Delivery struct {
	Method         DeliveryMethod
	CardNumber     string
	BranchID       string
	CourierAddress string
}

// PersonalInfo is the applicant data merged from the registry after OTP
// verification. Read-only once populated.
type PersonalInfo struct {
	FirstName           string
	LastName            string
	FIN                 string
	DateOfBirth         string
	Address             string
	EmploymentStatus    gateway.EmploymentStatus
	MonthlyIncome       float64
	ExistingMonthlyDebt float64
}

// LoanRequest is the requested principal and term, mutable until submitted.
type LoanRequest struct {
	Amount     float64
	TermMonths int
}

// Bounds for the loan request.
const (
	MinAmount     = 100
	MaxAmount     = 50000
	MinTermMonths = 6
	MaxTermMonths = 59
)

// Session is the accumulated state of one wizard run. It lives only in
// memory and is discarded when the run ends; nothing here is persisted.
type Session struct {
	Step Step

	// Identity inputs, immutable once an OTP has been sent.
	LoginFIN    string
	PhoneNumber string // 9 digits, no country prefix

	// OTP challenge state; RequestID is scoped to one challenge.
	RequestID  string
	OTPSent    bool
	TTLSeconds int

	// Credentials holds the bearer token for the rest of the session.
	Credentials *gateway.TokenHolder

	PersonalInfo    PersonalInfo
	TermsAccepted   bool
	PrivacyAccepted bool

	LoanRequest LoanRequest

	// ApplicationID is assigned by the apply call and immutable afterward.
	ApplicationID string

	// Offer is the latest projected result from polling. Read-only view;
	// it never drives the wizard step.
	Offer *gateway.LoanResult

	ContractSigned bool
	KYCDone        bool

	Delivery Delivery

	// Abandoned is set when the applicant rejects the offer and exits.
	Abandoned bool

	// Err is the single human-readable error for the current step. It is
	// replaced on every state change.
	Err string
}

// NewSession creates a fresh session with the default loan request.
func NewSession(creds *gateway.TokenHolder) *Session {
	if creds == nil {
		creds = gateway.NewTokenHolder()
	}
	return &Session{
		Step:        StepIdentityEntry,
		Credentials: creds,
		LoanRequest: LoanRequest{Amount: 5000, TermMonths: 12},
		Delivery:    Delivery{Method: DeliveryCard},
	}
}

// WirePhoneNumber returns the phone number in the format the backend
// expects: country prefix plus the 9 local digits.
func (s *Session) WirePhoneNumber() string {
	return "+994" + s.PhoneNumber
}

// mergePersonalData copies the registry snapshot into the session. Called
// exactly once, on successful OTP verification.
func (s *Session) mergePersonalData(data *gateway.PersonalData) {
	if data == nil {
		return
	}
	s.PersonalInfo = PersonalInfo{
		FirstName:           data.FirstName,
		LastName:            data.LastName,
		FIN:                 data.FIN,
		DateOfBirth:         data.DateOfBirth,
		Address:             data.Address,
		EmploymentStatus:    gateway.EmploymentStatus(data.EmploymentStatus),
		MonthlyIncome:       data.MonthlyIncome,
		ExistingMonthlyDebt: data.ExistingMonthlyDebt,
	}
}
