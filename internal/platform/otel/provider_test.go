package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/creaturebattle/internal/platform/otel"
)

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("CREATUREBATTLE_OTEL_ENDPOINT", "")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetupNoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("CREATUREBATTLE_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("CREATUREBATTLE_OTEL_ENABLED", "false")

	cfg, err := otel.LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Enabled {
		t.Fatal("expected tracing disabled")
	}
	shutdown, err := otel.SetupWithConfig(context.Background(), "test-service", cfg)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := otel.LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.Enabled {
		t.Fatal("expected tracing enabled by default")
	}
	if cfg.SampleRatio != 1 {
		t.Fatalf("sample ratio = %v, want 1", cfg.SampleRatio)
	}
}

func TestLoadConfigRejectsBadRatio(t *testing.T) {
	t.Setenv("CREATUREBATTLE_OTEL_SAMPLE_RATIO", "half")
	if _, err := otel.LoadConfig(); err == nil {
		t.Fatal("expected error")
	}
}

func TestSetupCreatesProviderWhenEndpointSet(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
	}{
		{name: "always", ratio: 1},
		{name: "ratio", ratio: 0.25},
		{name: "never", ratio: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// A non-routable address keeps any export from happening.
			shutdown, err := otel.SetupWithConfig(context.Background(), "test-service", otel.Config{
				Enabled:     true,
				Endpoint:    "http://192.0.2.1:4318",
				SampleRatio: tc.ratio,
			})
			if err != nil {
				t.Fatalf("setup: %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown: %v", err)
			}
		})
	}
}
