// Package calculator evaluates plain arithmetic expressions.
//
// The grammar accepts numeric literals, the binary operators + - * / and **,
// unary + and -, and parentheses. Identifiers, function calls and every other
// token are rejected, so an expression lifted out of free text can never reach
// anything beyond arithmetic.
package calculator

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"tutor-proxy/api/internal/util"
)

// Apology is returned by Evaluate whenever the expression cannot be computed.
const Apology = "Sorry, I couldn't calculate that directly. But I can still solve it symbolically!"

const (
	maxInputLen = 512
	maxDepth    = 64
	// integer results wider than this are reported as overflow
	maxIntBits = 4096
)

var (
	ErrEmpty          = errors.New("calculator: empty expression")
	ErrTooLong        = errors.New("calculator: expression too long")
	ErrTooDeep        = errors.New("calculator: expression nested too deeply")
	ErrDivisionByZero = errors.New("calculator: division by zero")
	ErrOverflow       = errors.New("calculator: result is not finite")
)

// Number is an evaluation result. Integer results are exact and stay
// integers until a division or a float literal is involved; Value is then the
// nearest float64.
type Number struct {
	Value   float64
	Integer bool
	exact   *big.Int
}

func intNumber(i *big.Int) (Number, error) {
	if i.BitLen() > maxIntBits {
		return Number{}, ErrOverflow
	}
	f, _ := new(big.Float).SetInt(i).Float64()
	return Number{Value: f, Integer: true, exact: i}, nil
}

func floatNumber(f float64) Number { return Number{Value: f} }

// Int returns the exact value of an integer result, or nil.
func (n Number) Int() *big.Int {
	if !n.Integer || n.exact == nil {
		return nil
	}
	return new(big.Int).Set(n.exact)
}

func (n Number) String() string {
	if n.Integer && n.exact != nil {
		return n.exact.String()
	}
	return util.FormatFloat(n.Value)
}

// Evaluate computes expr and reports "The result is {value}", or Apology on
// any failure.
func Evaluate(expr string) string {
	n, err := Eval(expr)
	if err != nil {
		return Apology
	}
	return fmt.Sprintf("The result is %s", n)
}

// Eval parses and evaluates expr after removing all whitespace.
func Eval(expr string) (Number, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, expr)
	if cleaned == "" {
		return Number{}, ErrEmpty
	}
	if len(cleaned) > maxInputLen {
		return Number{}, ErrTooLong
	}

	p := &parser{src: cleaned}
	n, err := p.expr(0)
	if err != nil {
		return Number{}, err
	}
	if p.pos != len(p.src) {
		return Number{}, p.errorf("unexpected %q", p.src[p.pos:])
	}
	if !n.Integer && (math.IsInf(n.Value, 0) || math.IsNaN(n.Value)) {
		return Number{}, ErrOverflow
	}
	return n, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("calculator: at %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) peek(tok string) bool {
	return strings.HasPrefix(p.src[p.pos:], tok)
}

// expr := term (('+' | '-') term)*
func (p *parser) expr(depth int) (Number, error) {
	if depth > maxDepth {
		return Number{}, ErrTooDeep
	}
	left, err := p.term(depth)
	if err != nil {
		return Number{}, err
	}
	for p.pos < len(p.src) {
		op := p.src[p.pos]
		if op != '+' && op != '-' {
			break
		}
		p.pos++
		right, err := p.term(depth)
		if err != nil {
			return Number{}, err
		}
		if left, err = arith(op, left, right); err != nil {
			return Number{}, err
		}
	}
	return left, nil
}

// term := unary (('*' | '/') unary)*
func (p *parser) term(depth int) (Number, error) {
	left, err := p.unary(depth)
	if err != nil {
		return Number{}, err
	}
	for p.pos < len(p.src) {
		if p.peek("**") {
			break
		}
		op := p.src[p.pos]
		if op != '*' && op != '/' {
			break
		}
		p.pos++
		right, err := p.unary(depth)
		if err != nil {
			return Number{}, err
		}
		if left, err = arith(op, left, right); err != nil {
			return Number{}, err
		}
	}
	return left, nil
}

// arith applies a binary + - * or /. Integer operands give exact integer
// results; / always gives a float, rounded once from the exact quotient.
func arith(op byte, a, b Number) (Number, error) {
	ints := a.Integer && b.Integer
	switch op {
	case '+':
		if ints {
			return intNumber(new(big.Int).Add(a.exact, b.exact))
		}
		return floatNumber(a.Value + b.Value), nil
	case '-':
		if ints {
			return intNumber(new(big.Int).Sub(a.exact, b.exact))
		}
		return floatNumber(a.Value - b.Value), nil
	case '*':
		if ints {
			return intNumber(new(big.Int).Mul(a.exact, b.exact))
		}
		return floatNumber(a.Value * b.Value), nil
	}
	if b.Value == 0 {
		return Number{}, ErrDivisionByZero
	}
	if ints {
		f, _ := new(big.Rat).SetFrac(a.exact, b.exact).Float64()
		return floatNumber(f), nil
	}
	return floatNumber(a.Value / b.Value), nil
}

// unary := ('+' | '-') unary | power
func (p *parser) unary(depth int) (Number, error) {
	if depth > maxDepth {
		return Number{}, ErrTooDeep
	}
	if p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '-':
			p.pos++
			n, err := p.unary(depth + 1)
			if err != nil {
				return Number{}, err
			}
			if n.Integer {
				return intNumber(new(big.Int).Neg(n.exact))
			}
			return floatNumber(-n.Value), nil
		case '+':
			p.pos++
			return p.unary(depth + 1)
		}
	}
	return p.power(depth)
}

// power := primary ('**' unary)?
//
// The exponent is parsed as a unary so that 2**-1 works and ** stays
// right-associative.
func (p *parser) power(depth int) (Number, error) {
	base, err := p.primary(depth)
	if err != nil {
		return Number{}, err
	}
	if !p.peek("**") {
		return base, nil
	}
	p.pos += 2
	exp, err := p.unary(depth + 1)
	if err != nil {
		return Number{}, err
	}
	if base.Value == 0 && exp.Value < 0 {
		return Number{}, ErrDivisionByZero
	}
	if base.Integer && exp.Integer && exp.exact.Sign() >= 0 {
		return intPow(base.exact, exp.exact)
	}
	v := math.Pow(base.Value, exp.Value)
	if math.IsNaN(v) {
		// negative base with fractional exponent has no real result
		return Number{}, p.errorf("no real result for %s**%s", base, exp)
	}
	return floatNumber(v), nil
}

// intPow refuses results that would exceed maxIntBits before computing them.
func intPow(base, exp *big.Int) (Number, error) {
	if base.CmpAbs(big.NewInt(1)) > 0 {
		if !exp.IsInt64() || (int64(base.BitLen())-1)*exp.Int64() > maxIntBits {
			return Number{}, ErrOverflow
		}
	}
	return intNumber(new(big.Int).Exp(base, exp, nil))
}

// primary := number | '(' expr ')'
func (p *parser) primary(depth int) (Number, error) {
	if p.pos >= len(p.src) {
		return Number{}, p.errorf("unexpected end of expression")
	}
	if p.src[p.pos] == '(' {
		p.pos++
		n, err := p.expr(depth + 1)
		if err != nil {
			return Number{}, err
		}
		if p.pos >= len(p.src) || p.src[p.pos] != ')' {
			return Number{}, p.errorf("missing closing parenthesis")
		}
		p.pos++
		return n, nil
	}
	return p.number()
}

func (p *parser) number() (Number, error) {
	start := p.pos
	digits, dot := 0, false
scan:
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !dot:
			dot = true
		default:
			break scan
		}
		p.pos++
	}
	if digits == 0 {
		p.pos = start
		return Number{}, p.errorf("unexpected %q", p.src[start:start+1])
	}
	lit := p.src[start:p.pos]
	if !dot {
		i, ok := new(big.Int).SetString(lit, 10)
		if !ok {
			return Number{}, p.errorf("bad number %q", lit)
		}
		return intNumber(i)
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Number{}, p.errorf("bad number %q", lit)
	}
	return floatNumber(v), nil
}
