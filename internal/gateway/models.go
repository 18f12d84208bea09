package gateway

// Wire types for the loan-decisioning backend API.
// Field names match the JSON contract exposed under /api/v1/kredo-ms.

// Channel is the delivery channel for one-time passwords.
type Channel string

const (
	ChannelSMS   Channel = "SMS"
	ChannelEmail Channel = "EMAIL"
)

// EmploymentStatus is the applicant's employment status as recorded in the
// personal-data registry.
type EmploymentStatus string

const (
	EmploymentEmployed     EmploymentStatus = "EMPLOYED"
	EmploymentSelfEmployed EmploymentStatus = "SELF_EMPLOYED"
	EmploymentUnemployed   EmploymentStatus = "UNEMPLOYED"
	EmploymentRetired      EmploymentStatus = "RETIRED"
	EmploymentStudent      EmploymentStatus = "STUDENT"
)

// Status is the backend's application lifecycle status.
type Status string

const (
	StatusOTPPending      Status = "OTP_PENDING"
	StatusOTPVerified     Status = "OTP_VERIFIED"
	StatusInfoSubmitted   Status = "INFO_SUBMITTED"
	StatusAmountSubmitted Status = "AMOUNT_SUBMITTED"
	StatusScoring         Status = "SCORING"
	StatusOfferPending    Status = "OFFER_PENDING"
	StatusOfferAccepted   Status = "OFFER_ACCEPTED"
	StatusOfferRejected   Status = "OFFER_REJECTED"
	StatusPendingCRM      Status = "PENDING_CRM"
	StatusCompleted       Status = "COMPLETED"
)

// statusRank orders statuses along the application lifecycle. Accepted and
// rejected share a rank: they are alternative outcomes of the same milestone.
var statusRank = map[Status]int{
	StatusOTPPending:      0,
	StatusOTPVerified:     1,
	StatusInfoSubmitted:   2,
	StatusAmountSubmitted: 3,
	StatusScoring:         4,
	StatusOfferPending:    5,
	StatusOfferAccepted:   6,
	StatusOfferRejected:   6,
	StatusPendingCRM:      7,
	StatusCompleted:       8,
}

// Rank returns the position of the status in the application lifecycle.
// Unknown statuses rank below every known one.
func (s Status) Rank() int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return -1
}

// AtLeast reports whether the status has reached the given milestone.
func (s Status) AtLeast(milestone Status) bool {
	return s.Rank() >= milestone.Rank()
}

// Decision is the underwriting engine's verdict.
type Decision string

const (
	DecisionApproved         Decision = "APPROVED"
	DecisionRejected         Decision = "REJECTED"
	DecisionManualReview     Decision = "MANUAL_REVIEW"
	DecisionPending          Decision = "PENDING"
	DecisionCustomerRejected Decision = "CUSTOMER_REJECTED"
)

// Terminal reports whether the decision ends the application. A terminal
// decision stops result polling.
func (d Decision) Terminal() bool {
	return d == DecisionRejected || d == DecisionCustomerRejected
}

// GenerateOTPRequest asks the OTP service to issue a new challenge.
type GenerateOTPRequest struct {
	PhoneNumber string  `json:"phoneNumber"`
	Channel     Channel `json:"channel"`
}

// GenerateOTPResponse carries the challenge handle and its validity window.
type GenerateOTPResponse struct {
	RequestID  string `json:"requestId"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// VerifyOTPRequest submits the code the applicant received.
type VerifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	RequestID   string `json:"requestId"`
	OTPCode     string `json:"otpCode"`
}

// VerifyOTPResponse returns the session credential and, when the registry
// lookup succeeds, the applicant's personal data.
type VerifyOTPResponse struct {
	Verified         bool          `json:"verified"`
	AccessToken      string        `json:"accessToken"`
	ExpiresInSeconds int           `json:"expiresInSeconds"`
	PersonalData     *PersonalData `json:"personalData,omitempty"`
}

// PersonalData is the registry snapshot merged into the session after OTP
// verification.
type PersonalData struct {
	FirstName           string  `json:"firstName"`
	LastName            string  `json:"lastName"`
	FIN                 string  `json:"fin"`
	DateOfBirth         string  `json:"dateOfBirth"`
	Address             string  `json:"address"`
	EmploymentStatus    string  `json:"employmentStatus"`
	MonthlyIncome       float64 `json:"monthlyIncome"`
	ExistingMonthlyDebt float64 `json:"existingMonthlyDebt"`
}

// Consent records the two independent agreements required before applying.
type Consent struct {
	TermsAccepted   bool `json:"termsAccepted"`
	PrivacyAccepted bool `json:"privacyAccepted"`
}

// ApplyToLoanRequest creates the loan application.
type ApplyToLoanRequest struct {
	PhoneNumber         string           `json:"phoneNumber"`
	FirstName           string           `json:"firstName"`
	LastName            string           `json:"lastName"`
	FIN                 string           `json:"fin"`
	DateOfBirth         string           `json:"dateOfBirth"`
	EmploymentStatus    EmploymentStatus `json:"employmentStatus"`
	MonthlyIncome       float64          `json:"monthlyIncome"`
	ExistingMonthlyDebt float64          `json:"existingMonthlyDebt"`
	Address             string           `json:"address"`
	Consent             Consent          `json:"consent"`
}

// ApplyToLoanResponse returns the server-assigned application identifier,
// the join key for every subsequent call.
type ApplyToLoanResponse struct {
	ApplicationID string `json:"applicationId"`
	Status        Status `json:"status"`
}

// SubmitAmountRequest carries the requested principal and term.
type SubmitAmountRequest struct {
	RequestedAmount float64 `json:"requestedAmount"`
	TermMonths      int     `json:"termMonths"`
}

// SubmitAmountResponse acknowledges the amount submission.
type SubmitAmountResponse struct {
	ApplicationID string `json:"applicationId"`
	Status        Status `json:"status"`
}

// LoanResult is the decision/offer resource fetched by the polling loop and
// the track-application flow. Nullable fields are pointers: the backend
// returns null for them until scoring has produced values.
type LoanResult struct {
	ApplicationID  string   `json:"applicationId"`
	Status         Status   `json:"status"`
	Decision       Decision `json:"decision,omitempty"`
	Score          *int     `json:"score"`
	ApprovedAmount *float64 `json:"approvedAmount"`
	APR            *float64 `json:"apr"`
	ReasonCodes    []string `json:"reasonCodes"`
	LastUpdated    string   `json:"lastUpdated"`
}
