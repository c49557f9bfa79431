package calc

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	InvalidCharacter ErrorKind = iota + 1
	UnexpectedToken
	InvalidFactor
	DivisionByZero
	NestingTooDeep
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidCharacter:
		return "InvalidCharacter"
	case UnexpectedToken:
		return "UnexpectedToken"
	case InvalidFactor:
		return "InvalidFactor"
	case DivisionByZero:
		return "DivisionByZero"
	case NestingTooDeep:
		return "NestingTooDeep"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is returned by the scanner and the parser. Char is set for
// InvalidCharacter, Expected for UnexpectedToken and Found for both
// UnexpectedToken and InvalidFactor.
type Error struct {
	Kind     ErrorKind
	Pos      Pos
	Char     rune
	Expected TokenKind
	Found    TokenKind
	msg      string
}

func NewError(kind ErrorKind, pos Pos, format string, args ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Pos:  pos,
		msg:  fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: error: %s", e.Pos, e.msg)
}

// Message is the error text without the position prefix.
func (e *Error) Message() string {
	return e.msg
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Message returns the text of the first *Error in err's chain without its
// position, or err.Error() for other errors.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message()
	}
	return err.Error()
}

func invalidCharacterError(pos Pos, c rune) *Error {
	e := NewError(InvalidCharacter, pos, "invalid character %q", c)
	e.Char = c
	return e
}

func unexpectedTokenError(pos Pos, expected, found TokenKind) *Error {
	e := NewError(UnexpectedToken, pos, "expected %s, but got %s", expected, found)
	e.Expected = expected
	e.Found = found
	return e
}

func invalidFactorError(pos Pos, found TokenKind) *Error {
	e := NewError(InvalidFactor, pos, "expected %s or %s, but got %s", INTEGER, LPAREN, found)
	e.Found = found
	return e
}
