// Package main provides a CLI for running Lua battle scenario scripts.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	scenariocmd "github.com/louisbranch/creaturebattle/internal/cmd/scenario"
	platformcmd "github.com/louisbranch/creaturebattle/internal/platform/cmd"
	"github.com/louisbranch/creaturebattle/internal/platform/config"
)

func main() {
	cfg, extra, err := scenariocmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.ExitErr(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceScenario, func(ctx context.Context) error {
		return scenariocmd.Run(ctx, cfg, extra, os.Stdout, os.Stderr)
	})
	if err != nil {
		config.ExitErr(err)
	}
}
