// Package main runs batches of AI battles and prints their outcomes.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	battlesimcmd "github.com/louisbranch/creaturebattle/internal/cmd/battlesim"
	platformcmd "github.com/louisbranch/creaturebattle/internal/platform/cmd"
	"github.com/louisbranch/creaturebattle/internal/platform/config"
)

func main() {
	cfg, err := battlesimcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.ExitErr(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceBattleSim, func(ctx context.Context) error {
		return battlesimcmd.Run(ctx, cfg, os.Stdout, os.Stderr)
	})
	if err != nil {
		config.ExitErr(err)
	}
}
