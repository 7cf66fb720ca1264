// Package main implements the command line tool for NES code/data usage analysis
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrodebug/internal/cli"
	"github.com/retroenv/retrodebug/internal/config"
	"github.com/retroenv/retrodebug/internal/fileprocessor"
	"github.com/retroenv/retrodebug/internal/options"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()
	logger := config.CreateLogger(false, false)

	cliApp := cli.NewApp(buildinfo.Version(version, commit, date), func(opts options.Program) error {
		logger = config.CreateLogger(opts.Debug, opts.Quiet)
		fileprocessor.PrintBanner(logger, opts, version, commit, date)
		return fileprocessor.ProcessFile(ctx, logger, opts)
	})

	if err := cliApp.Run(os.Args); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			// Handle context cancellation (Ctrl+C) gracefully
			logger.Info("Operation cancelled")
			return
		case errors.Is(err, cli.ErrNoInput):
		default:
			logger.Error("Processing failed", log.Err(err))
		}
		os.Exit(1)
	}
}
