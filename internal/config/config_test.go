package config

import (
	"errors"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected
// default values. This test ensures that defaults are documented through
// tests and that changes to defaults are intentional.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default base URL points at the professor listing", func(t *testing.T) {
		t.Parallel()
		if cfg.BaseURL != "https://www.ratemyprofessors.com/search/professors/" {
			t.Errorf("unexpected BaseURL: %s", cfg.BaseURL)
		}
	})

	t.Run("default wait timeout is 4 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.WaitTimeout != 4*time.Second {
			t.Errorf("expected WaitTimeout 4s, got %v", cfg.WaitTimeout)
		}
	})

	t.Run("default pagination budget is 20 minutes", func(t *testing.T) {
		t.Parallel()
		if cfg.PaginationBudget != 20*time.Minute {
			t.Errorf("expected PaginationBudget 20m, got %v", cfg.PaginationBudget)
		}
	})

	t.Run("default extractor concurrency is 6", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxExtractors != 6 {
			t.Errorf("expected MaxExtractors 6, got %d", cfg.MaxExtractors)
		}
	})

	t.Run("default session concurrency is at least 2", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxSessions < 2 {
			t.Errorf("expected MaxSessions >= 2, got %d", cfg.MaxSessions)
		}
	})

	t.Run("default startup jitter is 2 to 4 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.StartupDelayMin != 2*time.Second || cfg.StartupDelayMax != 4*time.Second {
			t.Errorf("unexpected startup jitter: %v to %v", cfg.StartupDelayMin, cfg.StartupDelayMax)
		}
	})

	t.Run("default click jitter is 500ms to 1500ms", func(t *testing.T) {
		t.Parallel()
		if cfg.ClickDelayMin != 500*time.Millisecond || cfg.ClickDelayMax != 1500*time.Millisecond {
			t.Errorf("unexpected click jitter: %v to %v", cfg.ClickDelayMin, cfg.ClickDelayMax)
		}
	})

	t.Run("headless by default", func(t *testing.T) {
		t.Parallel()
		if !cfg.Headless {
			t.Error("expected Headless to default to true")
		}
	})

	t.Run("default sources are populated", func(t *testing.T) {
		t.Parallel()
		if len(cfg.Sources) != 5 {
			t.Errorf("expected 5 default sources, got %d", len(cfg.Sources))
		}
	})
}

// TestDefaultMaxSessions verifies the CPU-derived session count stays within
// its documented floor.
func TestDefaultMaxSessions(t *testing.T) {
	t.Parallel()

	if got := DefaultMaxSessions(); got < 2 {
		t.Errorf("expected at least 2 sessions, got %d", got)
	}
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	// validConfig returns a minimal valid configuration.
	// Tests can modify specific fields to test validation rules.
	validConfig := func() *Config {
		return &Config{
			BaseURL:          DefaultBaseURL,
			Sources:          []Source{{Name: "Acadia University", RemoteID: 1406}},
			OutputDir:        "data",
			Headless:         true,
			MaxSessions:      2,
			MaxExtractors:    6,
			WaitTimeout:      4 * time.Second,
			PaginationBudget: 20 * time.Minute,
			StartupDelayMin:  2 * time.Second,
			StartupDelayMax:  4 * time.Second,
			ClickDelayMin:    500 * time.Millisecond,
			ClickDelayMax:    1500 * time.Millisecond,
		}
	}

	t.Run("valid config returns nil", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("empty sources returns ErrNoSources", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Sources = nil

		if err := cfg.Validate(); !errors.Is(err, ErrNoSources) {
			t.Errorf("expected ErrNoSources, got %v", err)
		}
	})

	t.Run("source without name returns ErrInvalidSource", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Sources = []Source{{Name: "  ", RemoteID: 1406}}

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidSource) {
			t.Errorf("expected ErrInvalidSource, got %v", err)
		}
	})

	t.Run("source with zero remote ID returns ErrInvalidSource", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Sources = []Source{{Name: "Acadia University"}}

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidSource) {
			t.Errorf("expected ErrInvalidSource, got %v", err)
		}
	})

	t.Run("relative base URL returns ErrInvalidBaseURL", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.BaseURL = "/search/professors/"

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidBaseURL) {
			t.Errorf("expected ErrInvalidBaseURL, got %v", err)
		}
	})

	t.Run("non-http scheme returns ErrInvalidBaseURL", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.BaseURL = "ftp://example.com/"

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidBaseURL) {
			t.Errorf("expected ErrInvalidBaseURL, got %v", err)
		}
	})

	t.Run("zero wait timeout returns ErrInvalidWaitTimeout", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.WaitTimeout = 0

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidWaitTimeout) {
			t.Errorf("expected ErrInvalidWaitTimeout, got %v", err)
		}
	})

	t.Run("zero pagination budget is valid", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.PaginationBudget = 0

		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error for zero budget, got %v", err)
		}
	})

	t.Run("negative pagination budget returns ErrInvalidBudget", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.PaginationBudget = -time.Second

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidBudget) {
			t.Errorf("expected ErrInvalidBudget, got %v", err)
		}
	})

	t.Run("zero sessions returns ErrInvalidSessions", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.MaxSessions = 0

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidSessions) {
			t.Errorf("expected ErrInvalidSessions, got %v", err)
		}
	})

	t.Run("zero extractors returns ErrInvalidExtractors", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.MaxExtractors = 0

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidExtractors) {
			t.Errorf("expected ErrInvalidExtractors, got %v", err)
		}
	})

	t.Run("inverted startup jitter returns ErrInvalidJitter", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.StartupDelayMin = 5 * time.Second
		cfg.StartupDelayMax = 2 * time.Second

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidJitter) {
			t.Errorf("expected ErrInvalidJitter, got %v", err)
		}
	})

	t.Run("negative click jitter returns ErrInvalidJitter", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.ClickDelayMin = -time.Second

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidJitter) {
			t.Errorf("expected ErrInvalidJitter, got %v", err)
		}
	})
}
