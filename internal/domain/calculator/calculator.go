package calculator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	ErrorToken = "Erro"
	// Precision bounds the decimal places of computed results.
	Precision = 8
)

const (
	OpAdd      = "+"
	OpSubtract = "-"
	OpMultiply = "x"
	OpDivide   = "÷"
)

var (
	ErrUnknownKey     = errors.New("unknown calculator key")
	errDivisionByZero = errors.New("division by zero")
)

// Calculator is a four-function keypad calculator holding one pending binary operation.
// It is not safe for concurrent use.
type Calculator struct {
	display  string
	leftText string
	op       string
}

func New() *Calculator {
	return &Calculator{display: "0"}
}

func (c *Calculator) Display() string {
	return c.display
}

// Expression is the pending left operand and operator, e.g. "7 +", or empty.
func (c *Calculator) Expression() string {
	if c.op == "" {
		return ""
	}
	return c.leftText + " " + c.op
}

func (c *Calculator) Digit(d byte) {
	if d < '0' || d > '9' {
		return
	}
	if c.display == "0" || c.display == ErrorToken {
		c.display = string(d)
		return
	}
	c.display += string(d)
}

func (c *Calculator) Decimal() {
	switch {
	case c.display == ErrorToken:
		c.display = "0."
	case strings.Contains(c.display, "."):
	default:
		c.display += "."
	}
}

// Operator captures the current display as the left operand and waits for the right one.
// A previously pending operation is replaced, not evaluated.
func (c *Calculator) Operator(op string) error {
	normalized, ok := normalizeOperator(op)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, op)
	}
	if c.display == ErrorToken {
		return nil
	}
	c.leftText = strings.TrimSuffix(c.display, ".")
	c.op = normalized
	c.display = "0"
	return nil
}

func (c *Calculator) Percent() {
	v, err := parse(c.display)
	if err != nil {
		return
	}
	c.display = format(v.Div(decimal.NewFromInt(100)))
}

func (c *Calculator) Backspace() {
	if c.display == ErrorToken || len(c.display) <= 1 {
		c.display = "0"
		return
	}
	c.display = c.display[:len(c.display)-1]
	if c.display == "-" || c.display == "" {
		c.display = "0"
	}
}

func (c *Calculator) Clear() {
	c.display = "0"
	c.leftText = ""
	c.op = ""
}

// Evaluate computes the pending expression once. Failures put ErrorToken on the display.
func (c *Calculator) Evaluate() {
	if c.op == "" {
		return
	}
	defer func() {
		c.leftText = ""
		c.op = ""
	}()

	left, err := parse(c.leftText)
	if err != nil {
		c.display = ErrorToken
		return
	}
	right, err := parse(c.display)
	if err != nil {
		c.display = ErrorToken
		return
	}
	result, err := apply(left, c.op, right)
	if err != nil {
		c.display = ErrorToken
		return
	}
	c.display = format(result)
}

// Press dispatches a keypad label.
func (c *Calculator) Press(key string) error {
	key = strings.TrimSpace(key)
	switch {
	case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
		c.Digit(key[0])
	case key == "." || key == ",":
		c.Decimal()
	case key == "%":
		c.Percent()
	case key == "=":
		c.Evaluate()
	case strings.EqualFold(key, "C") || strings.EqualFold(key, "AC"):
		c.Clear()
	case key == "⌫" || strings.EqualFold(key, "back") || strings.EqualFold(key, "backspace") || strings.EqualFold(key, "del"):
		c.Backspace()
	default:
		return c.Operator(key)
	}
	return nil
}

// Run presses every key in order on a fresh calculator.
func Run(keys []string) (*Calculator, error) {
	c := New()
	for _, k := range keys {
		if err := c.Press(k); err != nil {
			return c, err
		}
	}
	return c, nil
}

func normalizeOperator(op string) (string, bool) {
	switch op {
	case "+":
		return OpAdd, true
	case "-", "−":
		return OpSubtract, true
	case "x", "X", "*", "×":
		return OpMultiply, true
	case "÷", "/":
		return OpDivide, true
	default:
		return "", false
	}
}

func apply(left decimal.Decimal, op string, right decimal.Decimal) (decimal.Decimal, error) {
	switch op {
	case OpAdd:
		return left.Add(right), nil
	case OpSubtract:
		return left.Sub(right), nil
	case OpMultiply:
		return left.Mul(right), nil
	case OpDivide:
		if right.IsZero() {
			return decimal.Zero, errDivisionByZero
		}
		return left.Div(right), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownKey, op)
	}
}

func parse(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSuffix(s, "."))
}

func format(v decimal.Decimal) string {
	return v.Round(Precision).String()
}
