// Package main implements the main entry point for the MIPS disassembler
package main

import (
	"errors"
	"os"

	"github.com/retroenv/mipsgodisasm/internal/cli"
	"github.com/retroenv/mipsgodisasm/internal/config"
	"github.com/retroenv/mipsgodisasm/internal/fileprocessor"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	if err := fileprocessor.ProcessFile(ctx, logger, opts); err != nil {
		logger.Error("Disassembling failed", log.Err(err))
		os.Exit(1)
	}
}
