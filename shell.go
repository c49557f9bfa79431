package calc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

const shellSource = "<stdin>"

// Shell is the read-eval-print loop around Evaluate. Each line gets its
// own scanner and parser.
type Shell struct {
	cfg    Config
	logger zerolog.Logger
}

func NewShell(cfg Config, logger zerolog.Logger) *Shell {
	return &Shell{
		cfg:    cfg,
		logger: logger,
	}
}

// Run reads lines from r until the exit keyword, end of input, or ctx is
// done, and writes results and errors to w.
func (s *Shell) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)
	opts := append(s.cfg.ParserOptions(), WithLogger(s.logger))
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(w, s.cfg.Prompt)
		text, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if text == "" && err != nil {
			fmt.Fprintln(w)
			return nil
		}
		line := strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
		if line == s.cfg.ExitKeyword {
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		fmt.Fprintln(w, s.eval(line, opts))
	}
}

func (s *Shell) eval(line string, opts []Option) string {
	if s.logger.Debug().Enabled() {
		tokens, err := ScanTokens(shellSource, line)
		if err == nil {
			strs := make([]string, 0, len(tokens))
			for _, tok := range tokens {
				strs = append(strs, tok.String())
			}
			s.logger.Debug().Str("input", line).Strs("tokens", strs).Msg("scanned")
		}
	}
	res, err := Evaluate(shellSource, line, opts...)
	if err != nil {
		kind, _ := KindOf(err)
		s.logger.Debug().Err(err).Stringer("kind", kind).Msg("evaluation failed")
		return fmt.Sprintf("error: %s", Message(err))
	}
	s.logger.Debug().Stringer("result", res).Msg("evaluated")
	return fmt.Sprintf("result: %s", res)
}
