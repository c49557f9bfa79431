package calc

import (
	"math/big"

	"github.com/cznic/mathutil"
	"github.com/rs/zerolog"
)

const (
	DefaultMaxDepth = 256
	maxDepthLimit   = 100000
)

type Option func(*Parser)

// WithStrict makes Parse reject tokens left over after the expression.
func WithStrict(strict bool) Option {
	return func(p *Parser) {
		p.strict = strict
	}
}

// WithMaxDepth bounds the parenthesis nesting depth.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = mathutil.Clamp(depth, 1, maxDepthLimit)
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// Evaluate scans and evaluates a single expression.
func Evaluate(source, input string, opts ...Option) (Number, error) {
	psr, err := NewParser(NewScanner(source, input), opts...)
	if err != nil {
		return Number{}, err
	}
	return psr.Parse()
}

// Parser evaluates the expression while it recognizes it; no syntax tree
// is built.
type Parser struct {
	scanner  *Scanner
	current  Token
	depth    int
	maxDepth int
	strict   bool
	logger   zerolog.Logger
}

// NewParser reads the first token from sc as lookahead.
func NewParser(sc *Scanner, opts ...Option) (*Parser, error) {
	p := &Parser{
		scanner:  sc,
		maxDepth: DefaultMaxDepth,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	tok, err := sc.Scan()
	if err != nil {
		return nil, err
	}
	p.current = tok
	return p, nil
}

// Parse evaluates one expression. Unless the parser is strict, tokens after
// the expression are left unread.
func (p *Parser) Parse() (Number, error) {
	result, err := p.expression()
	if err != nil {
		return Number{}, err
	}
	if p.strict && p.current.Kind != EOF {
		return Number{}, unexpectedTokenError(p.current.Pos, EOF, p.current.Kind)
	}
	if e := p.logger.Trace(); e.Enabled() {
		e.Str("result", result.RatString()).Msg("parsed")
	}
	return Number{r: result}, nil
}

func (p *Parser) expression() (*big.Rat, error) {
	result, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.current.Kind == PLUS || p.current.Kind == MINUS {
		op := p.current.Kind
		if err := p.eat(op); err != nil {
			return nil, err
		}
		rhs, err := p.term()
		if err != nil {
			return nil, err
		}
		result = apply(op, result, rhs)
	}
	return result, nil
}

func (p *Parser) term() (*big.Rat, error) {
	result, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.current.Kind == MULTIPLY || p.current.Kind == DIVIDE {
		op := p.current
		if err := p.eat(op.Kind); err != nil {
			return nil, err
		}
		rhs, err := p.factor()
		if err != nil {
			return nil, err
		}
		if op.Kind == DIVIDE && rhs.Sign() == 0 {
			return nil, NewError(DivisionByZero, op.Pos, "division by zero")
		}
		result = apply(op.Kind, result, rhs)
	}
	return result, nil
}

func (p *Parser) factor() (*big.Rat, error) {
	switch t := p.current; t.Kind {
	case INTEGER:
		if err := p.eat(INTEGER); err != nil {
			return nil, err
		}
		return new(big.Rat).SetInt(t.Value), nil
	case LPAREN:
		if p.depth >= p.maxDepth {
			return nil, NewError(NestingTooDeep, t.Pos, "nesting deeper than %d levels", p.maxDepth)
		}
		if err := p.eat(LPAREN); err != nil {
			return nil, err
		}
		p.depth++
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.eat(RPAREN); err != nil {
			return nil, err
		}
		p.depth--
		return inner, nil
	}
	return nil, invalidFactorError(p.current.Pos, p.current.Kind)
}

// eat consumes the lookahead if it has kind k and pulls the next token.
func (p *Parser) eat(k TokenKind) error {
	t := p.current
	if t.Kind != k {
		return unexpectedTokenError(t.Pos, k, t.Kind)
	}
	p.logger.Trace().Stringer("token", t).Msg("eat")
	next, err := p.scanner.Scan()
	if err != nil {
		return err
	}
	p.current = next
	return nil
}
