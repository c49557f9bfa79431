package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"calc"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
)

type options struct {
	Config   string `short:"c" long:"config" description:"properties file with shell settings"`
	LogLevel string `long:"log-level" description:"log level (trace, debug, info, warn, error)"`
	Strict   bool   `long:"strict" description:"reject tokens after the expression"`
	MaxDepth int    `long:"max-depth" description:"maximum parenthesis nesting depth"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg := calc.DefaultConfig()
	if opts.Config != "" {
		loaded, err := calc.LoadConfig(opts.Config)
		check(err)
		cfg = loaded
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Strict {
		cfg.Strict = true
	}
	if opts.MaxDepth > 0 {
		cfg.MaxDepth = opts.MaxDepth
	}

	level, err := cfg.Level()
	check(err)
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Str("service", "calcrepl").Logger().
		Level(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shell := calc.NewShell(cfg, logger)
	if err := shell.Run(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("shell exited")
	}
}

func check(err error) {
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("calcrepl")
	}
}
