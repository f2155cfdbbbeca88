package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Calculator evaluates arithmetic expressions for the agents: percentages,
// ratios, and basic math. Input is an expression like "(500-400)/400*100".
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

func (c *Calculator) Name() string { return "Financial Calculator" }

func (c *Calculator) Description() string {
	return "Performs financial calculations: percentages, ratios, and basic math. " +
		"Input: a mathematical expression using numbers, +, -, *, /, and parentheses."
}

func (c *Calculator) Invoke(_ context.Context, input string) (string, error) {
	expr := strings.TrimSpace(input)
	if expr == "" {
		return "Error: empty expression", nil
	}
	for _, r := range expr {
		if !strings.ContainsRune("0123456789+-*/.() ", r) {
			return fmt.Sprintf("Error: invalid character %q in expression. Only numbers, +, -, *, /, ., (, ), and spaces allowed.", r), nil
		}
	}

	p := &exprParser{input: expr}
	result, err := p.parseExpr()
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return fmt.Sprintf("Error: unexpected %q at position %d", p.input[p.pos], p.pos), nil
	}

	return fmt.Sprintf("Calculation: %s = %s", expr, result.String()), nil
}

// exprParser is a small recursive-descent parser over decimal arithmetic.
// Grammar: expr = term {(+|-) term}; term = factor {(*|/) factor};
// factor = number | "(" expr ")" | "-" factor.
type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) parseExpr() (decimal.Decimal, error) {
	left, err := p.parseTerm()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpaces()
		if p.pos >= len(p.input) {
			return left, nil
		}
		switch p.input[p.pos] {
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Add(right)
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Sub(right)
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parseTerm() (decimal.Decimal, error) {
	left, err := p.parseFactor()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpaces()
		if p.pos >= len(p.input) {
			return left, nil
		}
		switch p.input[p.pos] {
		case '*':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Mul(right)
		case '/':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return decimal.Zero, err
			}
			if right.IsZero() {
				return decimal.Zero, fmt.Errorf("division by zero")
			}
			left = left.DivRound(right, 8)
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parseFactor() (decimal.Decimal, error) {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return decimal.Zero, fmt.Errorf("unexpected end of expression")
	}

	if p.input[p.pos] == '-' {
		p.pos++
		v, err := p.parseFactor()
		if err != nil {
			return decimal.Zero, err
		}
		return v.Neg(), nil
	}

	if p.input[p.pos] == '(' {
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return decimal.Zero, err
		}
		p.skipSpaces()
		if p.pos >= len(p.input) || p.input[p.pos] != ')' {
			return decimal.Zero, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	}

	start := p.pos
	for p.pos < len(p.input) && (isDigit(p.input[p.pos]) || p.input[p.pos] == '.') {
		p.pos++
	}
	if start == p.pos {
		return decimal.Zero, fmt.Errorf("expected number at position %d", start)
	}
	v, err := decimal.NewFromString(p.input[start:p.pos])
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q", p.input[start:p.pos])
	}
	return v, nil
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
