package stats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrZeroDenominator is returned when a ratio or the marginal likelihood is zero.
var ErrZeroDenominator = errors.New("stats: zero denominator")

// Ratio is a count-based probability such as 4/20.
type Ratio struct {
	Numerator   float64
	Denominator float64
}

// Value returns Numerator / Denominator.
func (r Ratio) Value() (float64, error) {
	if r.Denominator == 0 {
		return 0, fmt.Errorf("%w: %v/%v", ErrZeroDenominator, r.Numerator, r.Denominator)
	}
	return r.Numerator / r.Denominator, nil
}

// ParseRatio parses "n/d" or a plain probability such as "0.2".
func ParseRatio(s string) (Ratio, error) {
	num, den, ok := strings.Cut(strings.TrimSpace(s), "/")
	n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return Ratio{}, fmt.Errorf("stats: invalid ratio %q: %w", s, err)
	}
	if !ok {
		return Ratio{Numerator: n, Denominator: 1}, nil
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
	if err != nil {
		return Ratio{}, fmt.Errorf("stats: invalid ratio %q: %w", s, err)
	}
	return Ratio{Numerator: n, Denominator: d}, nil
}

// Posterior computes P(A|B) = P(B|A) * P(A) / P(B) from the likelihood
// P(B|A), the prior P(A) and the marginal likelihood P(B).
//
// With 20 spam messages out of 100, 4 of them containing a word that appears
// in 5 messages overall: Posterior(4/20, 20/100, 5/100) = 0.8.
func Posterior(likelihood, prior, marginal Ratio) (float64, error) {
	l, err := likelihood.Value()
	if err != nil {
		return 0, fmt.Errorf("likelihood: %w", err)
	}
	p, err := prior.Value()
	if err != nil {
		return 0, fmt.Errorf("prior: %w", err)
	}
	m, err := marginal.Value()
	if err != nil {
		return 0, fmt.Errorf("marginal: %w", err)
	}
	if m == 0 {
		return 0, fmt.Errorf("marginal: %w", ErrZeroDenominator)
	}
	return l * p / m, nil
}
