package calc

import (
	"fmt"
	"math/big"
	"unicode"
	"unicode/utf8"
)

type TokenKind int

const (
	EOF TokenKind = iota
	INTEGER
	PLUS
	MINUS
	MULTIPLY
	DIVIDE
	LPAREN
	RPAREN
)

func (t TokenKind) String() string {
	switch t {
	case EOF:
		return "EOF"
	case INTEGER:
		return "INTEGER"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case MULTIPLY:
		return "MULTIPLY"
	case DIVIDE:
		return "DIVIDE"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	}
	panic("unreachable")
}

type Pos struct {
	Source string
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d", p.Source, p.Column)
}

// Token is a single lexical unit. Value is only set for INTEGER.
type Token struct {
	Pos
	Kind    TokenKind
	Content string
	Value   *big.Int
}

func (t Token) String() string {
	if t.Kind == INTEGER {
		return fmt.Sprintf("%s(%s)", t.Kind, t.Content)
	}
	return t.Kind.String()
}

func ScanTokens(source, input string) ([]Token, error) {
	sc := NewScanner(source, input)
	tokens := []Token{}
	for {
		tok, err := sc.Scan()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			break
		}
	}
	return tokens, nil
}

const eof rune = -1

// Scanner produces tokens on demand. ch always holds the rune starting at
// end, or eof once end has reached the length of the input.
type Scanner struct {
	source string
	input  string
	start  int
	end    int
	ch     rune
	width  int
}

func NewScanner(source, input string) *Scanner {
	s := &Scanner{
		source: source,
		input:  input,
	}
	s.load()
	return s
}

// Scan returns the next token. Once the input is exhausted every call
// returns an EOF token.
func (s *Scanner) Scan() (Token, error) {
	s.skipWhitespace()
	s.start = s.end
	var t Token
	switch c := s.ch; c {
	case eof:
		t = s.token(EOF)
	case '+':
		s.advance()
		t = s.token(PLUS)
	case '-':
		s.advance()
		t = s.token(MINUS)
	case '*':
		s.advance()
		t = s.token(MULTIPLY)
	case '/':
		s.advance()
		t = s.token(DIVIDE)
	case '(':
		s.advance()
		t = s.token(LPAREN)
	case ')':
		s.advance()
		t = s.token(RPAREN)
	default:
		if isNum(c) {
			return s.num(), nil
		}
		return s.token(EOF), invalidCharacterError(s.pos(), c)
	}
	return t, nil
}

func isNum(c rune) bool {
	return '0' <= c && c <= '9'
}

func (s *Scanner) num() Token {
	for isNum(s.ch) {
		s.advance()
	}
	t := s.token(INTEGER)
	t.Value, _ = new(big.Int).SetString(t.Content, 10)
	return t
}

func (s *Scanner) skipWhitespace() {
	for s.ch != eof && unicode.IsSpace(s.ch) {
		s.advance()
	}
}

func (s *Scanner) load() {
	if s.end >= len(s.input) {
		s.ch, s.width = eof, 0
		return
	}
	s.ch, s.width = utf8.DecodeRuneInString(s.input[s.end:])
}

func (s *Scanner) advance() {
	s.end += s.width
	s.load()
}

func (s *Scanner) pos() Pos {
	return Pos{
		Source: s.source,
		Column: s.start + 1,
	}
}

func (s *Scanner) token(k TokenKind) Token {
	content := s.input[s.start:s.end]
	pos := s.pos()
	s.start = s.end
	return Token{
		Pos:     pos,
		Kind:    k,
		Content: content,
	}
}
