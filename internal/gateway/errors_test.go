package gateway

import (
	"errors"
	"testing"
)

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindNetwork, "Network Error"},
		{KindTimeout, "Timeout"},
		{KindAuth, "Authentication Error"},
		{KindBusiness, "Business Error"},
		{KindServer, "Server Error"},
		{KindParse, "Parse Error"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %s, want %s", tt.kind, got, tt.want)
		}
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewNetworkError("/otp-service/generate-otp", inner)

	if !errors.Is(err, inner) {
		t.Error("wrapped cause should be reachable through errors.Is")
	}
}

func TestPredicates_NonGatewayError(t *testing.T) {
	plain := errors.New("something else")

	if IsNetworkError(plain) || IsTimeoutError(plain) || IsAuthError(plain) || IsBusinessError(plain) {
		t.Error("predicates must reject non-gateway errors")
	}
}

func TestUserMessage_ByKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"business verbatim",
			NewBusinessError(409, "/loan-application/app-1/submit-requested-amount", &APIError{ErrorCode: "AMOUNT_OUT_OF_RANGE", Message: "Requested amount exceeds the allowed limit"}),
			"Requested amount exceeds the allowed limit",
		},
		{
			"auth verbatim",
			NewAuthError("/loan-application/app-1/result", &APIError{ErrorCode: "TOKEN_EXPIRED", Message: "Access token expired"}),
			"Access token expired",
		},
		{
			"server generic",
			NewServerError(503, "/loan-application/app-1/finalize", &APIError{ErrorCode: "INTERNAL", Message: "NullPointerException at ScoringService.java:42"}),
			"The service is temporarily unavailable. Please try again.",
		},
		{
			"network generic",
			NewNetworkError("/loan-application/apply-to-loan", errors.New("dial tcp: connection refused")),
			"Network error. Please check your connection.",
		},
		{
			"parse generic",
			NewParseError("/loan-application/app-1/result", errors.New("unexpected EOF")),
			"Unexpected response from the service. Please try again.",
		},
		{
			"plain error passthrough",
			errors.New("custom failure"),
			"custom failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage_BusinessWithoutMessage(t *testing.T) {
	err := NewBusinessError(400, "/loan-application/apply-to-loan", &APIError{ErrorCode: "VALIDATION_ERROR"})

	if got := UserMessage(err); got == "" {
		t.Error("UserMessage should never be empty")
	}
}

func TestTokenHolder(t *testing.T) {
	holder := NewTokenHolder()

	if holder.Authenticated() {
		t.Error("fresh holder should not be authenticated")
	}

	holder.Set("tok-1")
	if !holder.Authenticated() || holder.Get() != "tok-1" {
		t.Error("Set should make the token retrievable")
	}

	holder.Set("tok-2")
	if holder.Get() != "tok-2" {
		t.Error("Set should replace the previous token")
	}

	holder.Clear()
	if holder.Authenticated() || holder.Get() != "" {
		t.Error("Clear should discard the token")
	}
}
