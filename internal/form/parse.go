package form

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseNumber accepts both "1.5" and the Dutch "1,5".
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, fmt.Errorf("a number is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

func anyNumber(s string) error {
	_, err := ParseNumber(s)
	return err
}

func positive(s string) error {
	v, err := ParseNumber(s)
	if err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("must be greater than 0")
	}
	return nil
}

func between(min, max float64) func(string) error {
	return func(s string) error {
		v, err := ParseNumber(s)
		if err != nil {
			return err
		}
		if v < min || v > max {
			return fmt.Errorf("must be between %g and %g", min, max)
		}
		return nil
	}
}

func countBetween(min, max int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%q is not a whole number", s)
		}
		if n < min || n > max {
			return fmt.Errorf("must be between %d and %d", min, max)
		}
		return nil
	}
}

// parser keeps the first conversion error so Design can parse every field
// without an error check per line.
type parser struct {
	err error
}

func (p *parser) float(field, s string) float64 {
	v, err := ParseNumber(s)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", field, err)
	}
	return v
}

func (p *parser) int(field, s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %q is not a whole number", field, s)
	}
	return n
}
