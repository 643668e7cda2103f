package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"ETHERSCAN_BASE_URL", "ETHERSCAN_API_KEY", "MAX_AGE_DAYS", "HTTP_TIMEOUT", "ON_ERROR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	c := Load()
	if c.BaseURL != DefaultBaseURL {
		t.Fatalf("base url = %q", c.BaseURL)
	}
	if c.APIKey != "" {
		t.Fatalf("api key = %q, want empty", c.APIKey)
	}
	if c.MaxAgeDays != DefaultMaxAgeDays {
		t.Fatalf("max age = %d", c.MaxAgeDays)
	}
	if c.Timeout != 30*time.Second {
		t.Fatalf("timeout = %v", c.Timeout)
	}
	if c.OnError != OnErrorAbort {
		t.Fatalf("on error = %q", c.OnError)
	}
}

func TestLoadEnvOverridesAndClamps(t *testing.T) {
	t.Setenv("ETHERSCAN_BASE_URL", "http://localhost:9000/api")
	t.Setenv("ETHERSCAN_API_KEY", "KEY123")
	t.Setenv("MAX_AGE_DAYS", "99999") // above cap
	t.Setenv("HTTP_TIMEOUT", "5ms")   // below floor
	t.Setenv("ON_ERROR", "SKIP")
	c := Load()
	if c.BaseURL != "http://localhost:9000/api" || c.APIKey != "KEY123" {
		t.Fatalf("env not applied: %+v", c)
	}
	if c.MaxAgeDays != maxMaxAgeDays {
		t.Fatalf("max age not clamped: %d", c.MaxAgeDays)
	}
	if c.Timeout != minTimeout {
		t.Fatalf("timeout not clamped: %v", c.Timeout)
	}
	if c.OnError != OnErrorSkip {
		t.Fatalf("on error = %q", c.OnError)
	}
}

func TestLoadInvalidEnvFallsBack(t *testing.T) {
	t.Setenv("MAX_AGE_DAYS", "not-a-number")
	t.Setenv("HTTP_TIMEOUT", "soon")
	c := Load()
	if c.MaxAgeDays != DefaultMaxAgeDays {
		t.Fatalf("max age = %d, want default", c.MaxAgeDays)
	}
	if c.Timeout != 30*time.Second {
		t.Fatalf("timeout = %v, want default", c.Timeout)
	}
}

func TestNormalizeOnError(t *testing.T) {
	cases := map[string]string{
		"skip":  OnErrorSkip,
		" Skip": OnErrorSkip,
		"abort": OnErrorAbort,
		"":      OnErrorAbort,
		"what":  OnErrorAbort,
	}
	for in, want := range cases {
		if got := NormalizeOnError(in); got != want {
			t.Fatalf("NormalizeOnError(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	body := "etherscan:\n  base_url: http://mock/api\n  api_key: FILEKEY\nscan:\n  max_age_days: 14\n  on_error: skip\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Etherscan.BaseURL != "http://mock/api" || s.Etherscan.APIKey != "FILEKEY" {
		t.Fatalf("etherscan section: %+v", s.Etherscan)
	}
	if s.Scan.MaxAgeDays != 14 || s.Scan.OnError != "skip" {
		t.Fatalf("scan section: %+v", s.Scan)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("etherscan: ["), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(bad); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestRedactAPIKey(t *testing.T) {
	cases := map[string]string{
		"":           "",
		"ab":         "***",
		"abcd":       "***",
		"abcdefghij": "abcd***",
	}
	for in, want := range cases {
		if got := RedactAPIKey(in); got != want {
			t.Fatalf("RedactAPIKey(%q) = %q, want %q", in, got, want)
		}
	}
}
