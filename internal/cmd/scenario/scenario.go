// Package scenario implements the scenario command: it runs Lua battle
// scripts against the in-process engine.
package scenario

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	platformcmd "github.com/louisbranch/creaturebattle/internal/platform/cmd"
	"github.com/louisbranch/creaturebattle/internal/platform/timeouts"
	"github.com/louisbranch/creaturebattle/internal/tools/scenario"
)

// Config holds scenario command configuration.
type Config struct {
	Scenario   string        `env:"SCENARIO_FILE"`
	Assertions bool          `env:"SCENARIO_ASSERT"     envDefault:"true"`
	Verbose    bool          `env:"SCENARIO_VERBOSE"`
	Timeout    time.Duration `env:"SCENARIO_TIMEOUT"`
	Locale     string        `env:"LOCALE"              envDefault:"en-US"`
	// Narrate echoes the battle transcript to stdout.
	Narrate bool `env:"SCENARIO_NARRATE"`
}

// ParseConfig parses env defaults and flags into a Config. Positional
// arguments are extra scenario files.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, []string, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, nil, err
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = timeouts.ScenarioStep
	}

	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file")
	fs.BoolVar(&cfg.Assertions, "assert", cfg.Assertions, "enable assertions (disable to log expectations)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout per step")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "narration locale")
	fs.BoolVar(&cfg.Narrate, "narrate", cfg.Narrate, "print the battle transcript")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, nil, err
	}
	return cfg, fs.Args(), nil
}

// Run executes cfg.Scenario followed by every extra path. It stops at the
// first failing scenario.
func Run(ctx context.Context, cfg Config, extra []string, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	paths := extra
	if cfg.Scenario != "" {
		paths = append([]string{cfg.Scenario}, extra...)
	}
	if len(paths) == 0 {
		return errors.New("scenario path is required")
	}

	mode := scenario.AssertionStrict
	if !cfg.Assertions {
		mode = scenario.AssertionLogOnly
	}
	runnerCfg := scenario.Config{
		Timeout:    cfg.Timeout,
		Assertions: mode,
		Verbose:    cfg.Verbose,
		Logger:     log.New(errOut, "", 0),
		Locale:     cfg.Locale,
	}
	if cfg.Narrate {
		runnerCfg.Transcript = out
	}
	runner, err := scenario.NewRunner(runnerCfg)
	if err != nil {
		return err
	}

	for _, path := range paths {
		loaded, err := scenario.LoadScenarioFromFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := runner.RunScenario(ctx, loaded); err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		fmt.Fprintf(out, "ok  %s\n", loaded.Name)
	}
	return nil
}
