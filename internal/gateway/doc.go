// Package gateway provides the HTTP client for the loan-decisioning backend.
//
// This package implements the wizard's only communication channel with the
// backend: OTP issuance and verification, application creation, amount
// submission, offer acceptance/rejection, finalization, and the result
// resource used by the polling loop and the track-application flow.
//
// # Request Handling
//
// Every outbound call carries a fresh X-Request-Id trace header (UUID) and,
// except for the two /otp-service/ endpoints, the session's bearer token.
// Requests use a fixed 30 second timeout. The gateway never retries on its
// own; retries in this product are always user-initiated.
//
// # Credentials
//
// The bearer token lives in a TokenHolder created per wizard session and
// passed to NewClient by reference. It is held only in memory and is cleared
// whenever the backend answers 401, forcing re-verification.
//
//	creds := gateway.NewTokenHolder()
//	client := gateway.NewClient("https://api.example.com", creds)
//
//	otp, err := client.GenerateOTP(ctx, gateway.GenerateOTPRequest{
//	    PhoneNumber: "+994501234567",
//	    Channel:     gateway.ChannelSMS,
//	})
//
// # Error Normalization
//
// All failures - HTTP error bodies, transport errors, timeouts, malformed
// responses - normalize into *gateway.Error wrapping the backend's wire
// shape {errorCode, message, path, timestamp, details}. Business errors keep
// the backend message verbatim; transport failures synthesize a generic one.
// Use the Kind predicates (IsAuthError, IsNetworkError, IsBusinessError) to
// branch, and UserMessage to obtain the single string shown to the user.
package gateway
