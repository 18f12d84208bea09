package config

import (
	"time"

	"github.com/TuranHaqverdiyev/Kredit/internal/gateway"
)

// Defaults applied when the config file is missing or a field is unset.
const (
	DefaultAPIBaseURL            = "http://localhost:8080"
	DefaultOTPChannel            = gateway.ChannelSMS
	DefaultPollIntervalSeconds   = 1
	DefaultRequestTimeoutSeconds = 30
)

// Settings represents the entire user configuration file.
type Settings struct {
	Version int `yaml:"version"`

	// APIBaseURL is the scheme://host[:port] of the loan backend. The API
	// prefix is appended by the gateway client, not stored here.
	APIBaseURL string `yaml:"api_base_url,omitempty"`

	// OTPChannel selects where one-time passwords are delivered (SMS or EMAIL).
	OTPChannel gateway.Channel `yaml:"otp_channel,omitempty"`

	// PollIntervalSeconds is the fixed delay between result polls.
	PollIntervalSeconds int `yaml:"poll_interval_seconds,omitempty"`

	// RequestTimeoutSeconds bounds every backend call.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds,omitempty"`

	// StrictAdvancement makes the wizard stay on the current step when a
	// backend call fails, instead of advancing optimistically.
	StrictAdvancement bool `yaml:"strict_advancement,omitempty"`
}

// NewSettings creates a Settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:               1,
		APIBaseURL:            DefaultAPIBaseURL,
		OTPChannel:            DefaultOTPChannel,
		PollIntervalSeconds:   DefaultPollIntervalSeconds,
		RequestTimeoutSeconds: DefaultRequestTimeoutSeconds,
	}
}

// normalize fills unset or out-of-range fields with defaults. A file edited
// by hand may carry a zero or negative interval; the wizard needs sane values.
func (s *Settings) normalize() {
	if s.APIBaseURL == "" {
		s.APIBaseURL = DefaultAPIBaseURL
	}
	if s.OTPChannel != gateway.ChannelSMS && s.OTPChannel != gateway.ChannelEmail {
		s.OTPChannel = DefaultOTPChannel
	}
	if s.PollIntervalSeconds <= 0 {
		s.PollIntervalSeconds = DefaultPollIntervalSeconds
	}
	if s.RequestTimeoutSeconds <= 0 {
		s.RequestTimeoutSeconds = DefaultRequestTimeoutSeconds
	}
}

// PollInterval returns the poll interval as a duration.
func (s *Settings) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalSeconds) * time.Second
}

// RequestTimeout returns the request timeout as a duration.
func (s *Settings) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}
