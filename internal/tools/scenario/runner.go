package scenario

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/louisbranch/creaturebattle/internal/dex"
	"github.com/louisbranch/creaturebattle/internal/narration"
	apperrors "github.com/louisbranch/creaturebattle/internal/platform/errors"
)

// Config controls scenario execution.
type Config struct {
	Timeout    time.Duration
	Assertions AssertionMode
	Verbose    bool
	Logger     *log.Logger
	// Locale selects the narration language. Expectations on messages are
	// matched against the localized text.
	Locale string
	// Transcript, when set, receives every narrated line as it happens.
	Transcript io.Writer
}

// DefaultConfig returns default runner configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:    10 * time.Second,
		Assertions: AssertionStrict,
		Locale:     narration.BaseLocale,
	}
}

// Runner executes Lua scenarios against an in-process battle engine.
type Runner struct {
	dex        *dex.Dex
	catalog    *narration.Catalog
	assertions Assertions
	logger     *log.Logger
	verbose    bool
	timeout    time.Duration
	locale     string
	transcript io.Writer
}

// NewRunner loads the embedded reference tables and message catalog and
// prepares a scenario runner.
func NewRunner(cfg Config) (*Runner, error) {
	d, err := dex.Default()
	if err != nil {
		return nil, fmt.Errorf("load dex: %w", err)
	}
	catalog, err := narration.DefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	locale := cfg.Locale
	if locale == "" {
		locale = narration.BaseLocale
	}
	if !catalog.HasLocale(locale) {
		return nil, apperrors.WithMetadata(apperrors.CodeScenarioInvalid,
			fmt.Sprintf("unsupported locale %q", locale), map[string]string{"Locale": locale})
	}

	return &Runner{
		dex:        d,
		catalog:    catalog,
		assertions: Assertions{Mode: cfg.Assertions, Logger: logger},
		logger:     logger,
		verbose:    cfg.Verbose,
		timeout:    timeout,
		locale:     locale,
		transcript: cfg.Transcript,
	}, nil
}

// RunFile loads and executes a scenario file.
func RunFile(ctx context.Context, cfg Config, path string) error {
	runner, err := NewRunner(cfg)
	if err != nil {
		return err
	}
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		return err
	}
	return runner.RunScenario(ctx, scenario)
}

// RunScenario executes the scenario steps in order. The battle is built the
// first time a step needs it; setup steps after that point are rejected.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) error {
	if scenario == nil {
		return apperrors.New(apperrors.CodeScenarioInvalid, "scenario is required")
	}
	r.logf("scenario start: %s (%d steps)", scenario.Name, len(scenario.Steps))
	state := newScenarioState(scenario.Name)

	for index, step := range scenario.Steps {
		stepNumber := index + 1
		r.logf("step %d/%d start: %s", stepNumber, len(scenario.Steps), describe(step))
		stepStart := time.Now()
		stepCtx, cancel := context.WithTimeout(ctx, r.timeout)
		err := r.runStep(stepCtx, state, step)
		cancel()
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", stepNumber, step.Kind, err)
		}
		r.logf("step %d/%d done: %s (%s)", stepNumber, len(scenario.Steps), step.Kind, time.Since(stepStart))
	}
	r.logf("scenario done: %s", scenario.Name)
	return nil
}

func (r *Runner) logf(format string, args ...any) {
	if !r.verbose || r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}
