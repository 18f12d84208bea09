package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TuranHaqverdiyev/Kredit/internal/logging"
)

const (
	// DefaultHost is the default backend host
	DefaultHost = "http://localhost:8080"

	// BasePath is the common prefix for every backend operation
	BasePath = "/api/v1/kredo-ms"

	// DefaultTimeout is the fixed request timeout. Requests that exceed it
	// surface as a network-kind error and are never retried automatically.
	DefaultTimeout = 30 * time.Second

	// otpServicePrefix marks the two unauthenticated endpoints
	otpServicePrefix = "/otp-service/"

	// requestIDHeader carries the per-call trace identifier
	requestIDHeader = "X-Request-Id"
)

// Client is the gateway to the loan-decisioning backend. It owns request
// tracing, bearer-token attachment, the fixed timeout, and normalization of
// every failure into the backend's wire error shape.
//
// The bearer credential is read from the TokenHolder on each call; OTP
// issuance and verification go out unauthenticated. A 401 response clears
// the holder as a side effect.
type Client struct {
	// BaseURL is the backend host plus the common base path
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// Credentials is the session-scoped token holder
	Credentials *TokenHolder

	// newRequestID produces the per-call trace identifier
	newRequestID func() string
}

// NewClient creates a gateway client for the given backend host.
// host: scheme+authority, e.g. "https://api.kredo.az" (empty uses DefaultHost)
func NewClient(host string, creds *TokenHolder) *Client {
	if host == "" {
		host = DefaultHost
	}
	return &Client{
		BaseURL:      strings.TrimRight(host, "/") + BasePath,
		HTTPClient:   &http.Client{Timeout: DefaultTimeout},
		Credentials:  creds,
		newRequestID: uuid.NewString,
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// GenerateOTP requests a new OTP challenge for the given phone number.
// Unauthenticated.
func (c *Client) GenerateOTP(ctx context.Context, req GenerateOTPRequest) (*GenerateOTPResponse, error) {
	var resp GenerateOTPResponse
	if err := c.do(ctx, http.MethodPost, "/otp-service/generate-otp", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyOTP submits the received code against an open challenge.
// Unauthenticated; a successful response carries the session bearer token
// and, when available, the applicant's registry data.
func (c *Client) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*VerifyOTPResponse, error) {
	var resp VerifyOTPResponse
	if err := c.do(ctx, http.MethodPost, "/otp-service/verify-otp", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ApplyToLoan creates the loan application from the applicant's personal
// data and consents. The returned applicationId is the join key for every
// subsequent call.
func (c *Client) ApplyToLoan(ctx context.Context, req ApplyToLoanRequest) (*ApplyToLoanResponse, error) {
	var resp ApplyToLoanResponse
	if err := c.do(ctx, http.MethodPost, "/loan-application/apply-to-loan", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubmitRequestedAmount submits the requested principal and term.
func (c *Client) SubmitRequestedAmount(ctx context.Context, applicationID string, req SubmitAmountRequest) (*SubmitAmountResponse, error) {
	var resp SubmitAmountResponse
	path := fmt.Sprintf("/loan-application/%s/submit-requested-amount", applicationID)
	if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetResult fetches the current decision/offer resource.
func (c *Client) GetResult(ctx context.Context, applicationID string) (*LoanResult, error) {
	var resp LoanResult
	path := fmt.Sprintf("/loan-application/%s/result", applicationID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AcceptOffer accepts the presented offer. No request body, empty response.
func (c *Client) AcceptOffer(ctx context.Context, applicationID string) error {
	path := fmt.Sprintf("/loan-application/%s/accept-offer", applicationID)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// RejectOffer rejects the presented offer.
func (c *Client) RejectOffer(ctx context.Context, applicationID string) error {
	path := fmt.Sprintf("/loan-application/%s/reject-offer", applicationID)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// Finalize completes the application after delivery selection.
func (c *Client) Finalize(ctx context.Context, applicationID string) error {
	path := fmt.Sprintf("/loan-application/%s/finalize", applicationID)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// do performs one backend call: encodes the body, attaches trace and auth
// headers, sends, and normalizes the outcome. There is no retry loop here;
// every retry in this product is user-initiated.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return NewParseError(path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return NewNetworkError(path, err)
	}

	requestID := c.newRequestID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, requestID)

	// OTP issuance and verification are the only unauthenticated calls
	if !strings.HasPrefix(path, otpServicePrefix) {
		if token := c.Credentials.Get(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	logging.LogAPIRequest(method, path, requestID)
	started := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return NewNetworkError(path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewNetworkError(path, err)
	}

	logging.LogAPIResponse(path, requestID, resp.StatusCode, time.Since(started))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// Invalidate the session credential; the next authenticated call
		// will fail the wizard back to re-verification.
		c.Credentials.Clear()
		return NewAuthError(path, decodeAPIError(data))

	case resp.StatusCode >= 500:
		return NewServerError(resp.StatusCode, path, decodeAPIError(data))

	case resp.StatusCode >= 400:
		return NewBusinessError(resp.StatusCode, path, decodeAPIError(data))
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return NewParseError(path, err)
		}
	}

	return nil
}

// decodeAPIError parses the backend's error body. Returns nil when the body
// is not the documented error shape, letting the constructors synthesize one.
func decodeAPIError(data []byte) *APIError {
	if len(data) == 0 {
		return nil
	}
	var apiErr APIError
	if err := json.Unmarshal(data, &apiErr); err != nil {
		return nil
	}
	if apiErr.ErrorCode == "" && apiErr.Message == "" {
		return nil
	}
	return &apiErr
}
