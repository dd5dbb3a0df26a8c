package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Op is the relation a numeric test checks.
type Op int

const (
	Equal   Op = iota // N
	Greater           // +N
	Less              // -N
)

// Comparison is a parsed +N / -N / N argument.
type Comparison struct {
	Op    Op
	Value int64
}

// Compare reports whether v satisfies the comparison.
func (c Comparison) Compare(v int64) bool {
	switch c.Op {
	case Greater:
		return v > c.Value
	case Less:
		return v < c.Value
	default:
		return v == c.Value
	}
}

func (c Comparison) String() string {
	switch c.Op {
	case Greater:
		return "+" + strconv.FormatInt(c.Value, 10)
	case Less:
		return "-" + strconv.FormatInt(c.Value, 10)
	default:
		return strconv.FormatInt(c.Value, 10)
	}
}

// ParseComparison parses `[+-]?digits`.
func ParseComparison(s string) (Comparison, error) {
	c, rest, err := parseSigned(s)
	if err != nil {
		return Comparison{}, err
	}
	if rest != "" {
		return Comparison{}, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return c, nil
}

// sizeUnits maps -size suffixes to their multiplier in bytes.
var sizeUnits = map[string]int64{
	"b": 1,
	"c": 1,
	"w": 2,
	"k": 1024,
	"M": 1024 * 1024,
	"G": 1024 * 1024 * 1024,
}

// ParseSize parses a -size argument `[+-]?digits[unit]` and returns the
// comparison in bytes. A missing unit means bytes.
func ParseSize(s string) (Comparison, error) {
	c, unit, err := parseSigned(s)
	if err != nil {
		return Comparison{}, err
	}

	multiplier := int64(1)
	if unit != "" {
		m, ok := sizeUnits[unit]
		if !ok {
			return Comparison{}, fmt.Errorf("%w: unknown size unit %q in %q", ErrInvalidNumber, unit, s)
		}
		multiplier = m
	}

	if c.Value > math.MaxInt64/multiplier {
		return Comparison{}, fmt.Errorf("%w: %q is too large", ErrInvalidNumber, s)
	}
	c.Value *= multiplier
	return c, nil
}

// parseSigned splits an optional sign and the leading digits off s and
// returns whatever follows the digits.
func parseSigned(s string) (Comparison, string, error) {
	var c Comparison
	rest := s
	switch {
	case strings.HasPrefix(rest, "+"):
		c.Op = Greater
		rest = rest[1:]
	case strings.HasPrefix(rest, "-"):
		c.Op = Less
		rest = rest[1:]
	}

	i := 0
	for i < len(rest) && isDigit(rest[i]) {
		i++
	}
	if i == 0 {
		return Comparison{}, "", fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}

	v, err := strconv.ParseInt(rest[:i], 10, 64)
	if err != nil {
		return Comparison{}, "", fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	c.Value = v
	return c, rest[i:], nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isNumeric reports whether s is a non-empty string of decimal digits.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
