package main

import (
	"errors"
	"fmt"
	"os"

	"calc"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
)

type options struct {
	Config   string `short:"c" long:"config" description:"properties file with parser settings"`
	LogLevel string `long:"log-level" description:"log level (trace, debug, info, warn, error)"`
	Strict   bool   `long:"strict" description:"reject tokens after the expression"`
	MaxDepth int    `long:"max-depth" description:"maximum parenthesis nesting depth"`
	Args     struct {
		Exprs []string `positional-arg-name:"EXPR" required:"1"`
	} `positional-args:"yes"`
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
	switch {
	case opts.LogLevel != "":
		cfg.LogLevel = opts.LogLevel
	case opts.Config == "":
		cfg.LogLevel = zerolog.WarnLevel.String()
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
		With().Timestamp().Str("service", "calc").Logger().
		Level(level)

	parserOpts := append(cfg.ParserOptions(), calc.WithLogger(logger))
	for i, expr := range opts.Args.Exprs {
		res, err := calc.Evaluate(fmt.Sprintf("<arg%d>", i+1), expr, parserOpts...)
		if err != nil {
			logger.Debug().Err(err).Str("expr", expr).Msg("evaluation failed")
			fmt.Fprintf(os.Stderr, "error: %s\n", calc.Message(err))
			os.Exit(1)
		}
		logger.Debug().Str("expr", expr).Stringer("result", res).Msg("evaluated")
		fmt.Println(res)
	}
}

func check(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
