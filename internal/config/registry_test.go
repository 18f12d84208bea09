package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/TuranHaqverdiyev/Kredit/internal/gateway"
)

func TestNewSettings_Defaults(t *testing.T) {
	s := NewSettings()

	if s.Version != 1 {
		t.Errorf("Version = %d, want 1", s.Version)
	}
	if s.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %s, want %s", s.APIBaseURL, DefaultAPIBaseURL)
	}
	if s.OTPChannel != gateway.ChannelSMS {
		t.Errorf("OTPChannel = %s, want SMS", s.OTPChannel)
	}
	if s.PollIntervalSeconds != 1 || s.RequestTimeoutSeconds != 30 {
		t.Errorf("intervals = %d/%d, want 1/30", s.PollIntervalSeconds, s.RequestTimeoutSeconds)
	}
	if s.StrictAdvancement {
		t.Error("StrictAdvancement should default to false")
	}
}

func TestNormalize_FillsBadValues(t *testing.T) {
	s := &Settings{
		Version:             1,
		OTPChannel:          "CARRIER_PIGEON",
		PollIntervalSeconds: -5,
	}
	s.normalize()

	if s.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %s, want default", s.APIBaseURL)
	}
	if s.OTPChannel != gateway.ChannelSMS {
		t.Errorf("OTPChannel = %s, want SMS fallback", s.OTPChannel)
	}
	if s.PollIntervalSeconds != DefaultPollIntervalSeconds {
		t.Errorf("PollIntervalSeconds = %d, want %d", s.PollIntervalSeconds, DefaultPollIntervalSeconds)
	}
	if s.RequestTimeoutSeconds != DefaultRequestTimeoutSeconds {
		t.Errorf("RequestTimeoutSeconds = %d, want %d", s.RequestTimeoutSeconds, DefaultRequestTimeoutSeconds)
	}
}

func TestSaveAndReload_Roundtrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test overrides XDG_CONFIG_HOME")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	s := NewSettings()
	s.APIBaseURL = "https://kredo.example.com"
	s.OTPChannel = gateway.ChannelEmail
	s.PollIntervalSeconds = 2
	s.StrictAdvancement = true

	if err := s.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := ReloadSettings()
	if err != nil {
		t.Fatalf("ReloadSettings() error = %v", err)
	}

	if loaded.APIBaseURL != "https://kredo.example.com" {
		t.Errorf("APIBaseURL = %s", loaded.APIBaseURL)
	}
	if loaded.OTPChannel != gateway.ChannelEmail {
		t.Errorf("OTPChannel = %s, want EMAIL", loaded.OTPChannel)
	}
	if loaded.PollIntervalSeconds != 2 {
		t.Errorf("PollIntervalSeconds = %d, want 2", loaded.PollIntervalSeconds)
	}
	if !loaded.StrictAdvancement {
		t.Error("StrictAdvancement should survive the roundtrip")
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test overrides XDG_CONFIG_HOME")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	loaded, err := ReloadSettings()
	if err != nil {
		t.Fatalf("ReloadSettings() error = %v", err)
	}

	if loaded.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %s, want default when file is missing", loaded.APIBaseURL)
	}
}

func TestLoad_UnsupportedVersion(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test overrides XDG_CONFIG_HOME")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir := filepath.Join(dir, appName)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, configFile), []byte("version: 99\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := ReloadSettings(); err == nil {
		t.Error("ReloadSettings() should reject unsupported versions")
	}
}
