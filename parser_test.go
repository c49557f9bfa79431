package calc_test

import (
	"bytes"
	"calc"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type evaluateTest struct {
	source   string
	expected string
}

var evaluateTests = []evaluateTest{
	{"1", "1"},
	{"2+3*4", "14"},
	{"(2+3)*4", "20"},
	{"  1  +  2  ", "3"},
	{"1+2", "3"},
	{"10-3-2", "5"},
	{"8/4/2", "1"},
	{"7/2", "3.5"},
	{"1/3", "0.3333333333333333"},
	{"1/3*3", "1"},
	{"2*(3+4)*5", "70"},
	{"((((7))))", "7"},
	{"100-(2*(3+4))", "86"},
	{"0/5", "0"},
	{"2-5", "-3"},
	{"1+2)", "3"},
	{"1 2", "1"},
	{"3 4 $", "3"},
	{"007+1", "8"},
	{"99999999999999999999*99999999999999999999", "9999999999999999999800000000000000000001"},
}

func init() {
	zeros := strings.Repeat("0", 400)
	evaluateTests = append(evaluateTests,
		evaluateTest{"(1" + zeros + "+1)/2", "5e+399"},
		evaluateTest{"1/1" + zeros, "1e-400"},
		evaluateTest{"0-1/1" + zeros, "-1e-400"},
	)
}

func TestEvaluate(t *testing.T) {
	for _, test := range evaluateTests {
		t.Logf("running test '%s'", test.source)
		res, err := calc.Evaluate("<test>", test.source)
		if assert.NoError(t, err) {
			assert.Equal(t, test.expected, res.String())
		}
	}
}

type evaluateErrorTest struct {
	source string
	kind   calc.ErrorKind
}

var evaluateErrorTests = []evaluateErrorTest{
	{"5/0", calc.DivisionByZero},
	{"5/(2-2)", calc.DivisionByZero},
	{"1+5/0*3", calc.DivisionByZero},
	{"(1+2", calc.UnexpectedToken},
	{"((1)", calc.UnexpectedToken},
	{"(1 2)", calc.UnexpectedToken},
	{"1+a", calc.InvalidCharacter},
	{"a", calc.InvalidCharacter},
	{"1+", calc.InvalidFactor},
	{"", calc.InvalidFactor},
	{")", calc.InvalidFactor},
	{"-1", calc.InvalidFactor},
	{"2**3", calc.InvalidFactor},
	{"()", calc.InvalidFactor},
}

func TestEvaluate_Errors(t *testing.T) {
	for _, test := range evaluateErrorTests {
		t.Logf("running test '%s'", test.source)
		_, err := calc.Evaluate("<test>", test.source)
		kind, ok := calc.KindOf(err)
		if assert.True(t, ok, "expected a calc error, got %v", err) {
			assert.Equal(t, test.kind, kind)
		}
	}
}

func TestEvaluate_UnexpectedTokenDetails(t *testing.T) {
	_, err := calc.Evaluate("<test>", "(1+2")
	var e *calc.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, calc.RPAREN, e.Expected)
	assert.Equal(t, calc.EOF, e.Found)
	assert.Equal(t, "<test>:5: error: expected RPAREN, but got EOF", e.Error())
}

func TestEvaluate_InvalidFactorDetails(t *testing.T) {
	_, err := calc.Evaluate("<test>", "1+*")
	var e *calc.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, calc.MULTIPLY, e.Found)
	assert.Equal(t, 3, e.Pos.Column)
	assert.Equal(t, "expected INTEGER or LPAREN, but got MULTIPLY", e.Message())
}

func TestEvaluate_DivisionByZeroPosition(t *testing.T) {
	_, err := calc.Evaluate("<test>", "4 / 0")
	var e *calc.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, calc.DivisionByZero, e.Kind)
	assert.Equal(t, 3, e.Pos.Column)
}

func TestNewParser_FirstTokenError(t *testing.T) {
	_, err := calc.NewParser(calc.NewScanner("<test>", "?"))
	kind, ok := calc.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, calc.InvalidCharacter, kind)
}

func TestParser_LeavesTrailingTokens(t *testing.T) {
	sc := calc.NewScanner("<test>", "1+2) 4")
	psr, err := calc.NewParser(sc)
	require.NoError(t, err)
	res, err := psr.Parse()
	require.NoError(t, err)
	assert.Equal(t, "3", res.String())

	// the lookahead RPAREN was consumed from the scanner; the rest is unread
	tok, err := sc.Scan()
	require.NoError(t, err)
	assert.Equal(t, calc.INTEGER, tok.Kind)
	assert.Equal(t, "4", tok.Content)
}

type strictTest struct {
	source string
	found  calc.TokenKind
}

var strictTests = []strictTest{
	{"1+2)", calc.RPAREN},
	{"1 2", calc.INTEGER},
	{"(3)(4)", calc.LPAREN},
}

func TestEvaluate_Strict(t *testing.T) {
	for _, test := range strictTests {
		t.Logf("running test '%s'", test.source)
		_, err := calc.Evaluate("<test>", test.source, calc.WithStrict(true))
		var e *calc.Error
		if assert.ErrorAs(t, err, &e) {
			assert.Equal(t, calc.UnexpectedToken, e.Kind)
			assert.Equal(t, calc.EOF, e.Expected)
			assert.Equal(t, test.found, e.Found)
		}
	}
	res, err := calc.Evaluate("<test>", " (1+2) ", calc.WithStrict(true))
	require.NoError(t, err)
	assert.Equal(t, "3", res.String())
}

func TestEvaluate_MaxDepth(t *testing.T) {
	nested := func(n int) string {
		return strings.Repeat("(", n) + "1" + strings.Repeat(")", n)
	}

	res, err := calc.Evaluate("<test>", nested(3), calc.WithMaxDepth(3))
	require.NoError(t, err)
	assert.Equal(t, "1", res.String())

	_, err = calc.Evaluate("<test>", nested(4), calc.WithMaxDepth(3))
	kind, _ := calc.KindOf(err)
	assert.Equal(t, calc.NestingTooDeep, kind)

	_, err = calc.Evaluate("<test>", nested(calc.DefaultMaxDepth+1))
	kind, _ = calc.KindOf(err)
	assert.Equal(t, calc.NestingTooDeep, kind)

	// sibling groups do not accumulate depth
	res, err = calc.Evaluate("<test>", "(1)+(2)+(3)", calc.WithMaxDepth(1))
	require.NoError(t, err)
	assert.Equal(t, "6", res.String())

	// non-positive limits are clamped to one level
	_, err = calc.Evaluate("<test>", "(1)", calc.WithMaxDepth(0))
	assert.NoError(t, err)
}

func TestEvaluate_TraceLogging(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var logs bytes.Buffer
	_, err := calc.Evaluate("<test>", "6/4", calc.WithLogger(zerolog.New(&logs).Level(zerolog.TraceLevel)))
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"result":"3/2"`)

	logs.Reset()
	_, err = calc.Evaluate("<test>", "6/4", calc.WithLogger(zerolog.New(&logs).Level(zerolog.DebugLevel)))
	require.NoError(t, err)
	assert.Empty(t, logs.String())
}

func TestMessage(t *testing.T) {
	_, err := calc.Evaluate("<test>", "1/0")
	require.Error(t, err)
	wrapped := fmt.Errorf("line 3: %w", err)
	assert.Equal(t, "division by zero", calc.Message(wrapped))
	assert.Equal(t, "plain", calc.Message(errors.New("plain")))
}
