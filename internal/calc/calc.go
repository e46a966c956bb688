// Package calc derives the economic quantities shown while issuing a token
// or seeding a liquidity pool. Every function is pure and tolerates
// malformed input: anything that does not parse counts as zero.
package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// IssuanceFeeRate is the platform fee on a new token's initial supply,
	// taken in the token's own units.
	IssuanceFeeRate = 0.0001

	// LPFeeRate is the platform fee on the initial pool-share tokens.
	LPFeeRate = 0.001

	// PricePlaces is the fixed precision of InitialPrice.
	PricePlaces = 6

	// MaxDecimals is the largest number of decimals a token may declare.
	MaxDecimals = 18
)

// ParseAmount reads the leading decimal number of s the way a browser's
// parseFloat does: leading whitespace is skipped, trailing garbage is
// ignored ("12abc" is 12). Input with no numeric prefix, or a value that is
// not finite, yields 0.
func ParseAmount(s string) float64 {
	prefix := numericPrefix(strings.TrimLeft(s, " \t\n\r\v\f"))
	if prefix == "" {
		return 0
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// numericPrefix returns the longest prefix of s that forms a decimal
// literal: optional sign, digits with at most one '.', and an optional
// exponent that is only kept when it carries digits.
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return ""
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}
	return s[:end]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// TokenIssuanceFee is the flat 0.01% fee on the initial supply. Negative
// supplies are not rejected here, but they never produce a negative fee.
func TokenIssuanceFee(supply string) float64 {
	return math.Max(0, ParseAmount(supply)) * IssuanceFeeRate
}

// InitialPrice is the spot price of one unit of the own token expressed in
// pairing-token units, formatted with exactly six decimals.
func InitialPrice(ownAmount, pairingAmount string) string {
	own := ParseAmount(ownAmount)
	if own == 0 {
		return formatFixed(0, PricePlaces)
	}
	price := ParseAmount(pairingAmount) / own
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return formatFixed(0, PricePlaces)
	}
	return formatFixed(price, PricePlaces)
}

// ExpectedLPTokens models the constant-product pool's initial share issuance
// as the geometric mean of both deposits.
func ExpectedLPTokens(ownAmount, pairingAmount string) float64 {
	own := ParseAmount(ownAmount)
	pairing := ParseAmount(pairingAmount)

	product := own * pairing
	if product <= 0 {
		return 0
	}
	lp := math.Sqrt(product)
	if math.IsInf(lp, 0) {
		// The product overflowed; both factors are positive here.
		lp = math.Sqrt(math.Abs(own)) * math.Sqrt(math.Abs(pairing))
	}
	if math.IsNaN(lp) || math.IsInf(lp, 0) {
		return 0
	}
	return lp
}

// LPFee is the flat 0.1% platform fee in pool-token units.
func LPFee(ownAmount, pairingAmount string) float64 {
	return ExpectedLPTokens(ownAmount, pairingAmount) * LPFeeRate
}

// RawSupply converts a human supply into the integer amount of smallest
// units the ledger stores (supply × 10^decimals). Fractions finer than the
// declared decimals are truncated.
func RawSupply(supply, decimals string) (string, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(supply))
	if err != nil {
		return "", fmt.Errorf("invalid supply %q: %w", supply, err)
	}
	if amount.IsNegative() {
		return "", fmt.Errorf("invalid supply %q: must not be negative", supply)
	}
	places, err := ParseDecimals(decimals)
	if err != nil {
		return "", err
	}
	return amount.Shift(int32(places)).Truncate(0).String(), nil
}

// ParseDecimals parses a token's decimals field and enforces 0..MaxDecimals.
func ParseDecimals(decimals string) (int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(decimals))
	if err != nil || !d.IsInteger() {
		return 0, fmt.Errorf("invalid decimals %q", decimals)
	}
	n := d.IntPart()
	if n < 0 || n > MaxDecimals {
		return 0, fmt.Errorf("decimals %d out of range 0-%d", n, MaxDecimals)
	}
	return int(n), nil
}

// FormatAmount renders v with a fixed number of places, trimming binary
// float noise (0.1+0.2 prints as 0.3000). A non-zero value that would round
// to zero keeps its significant digits instead (4e-05 prints as 0.00004).
func FormatAmount(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	d := decimal.NewFromFloat(v)
	if !d.IsZero() && d.Round(places).IsZero() {
		return d.String()
	}
	return d.StringFixed(places)
}

func formatFixed(v float64, places int) string {
	s := fmt.Sprintf("%.*f", places, v)
	// -0.000000 reads as a sign bug in a price preview.
	if strings.Trim(s, "-0.") == "" {
		return fmt.Sprintf("%.*f", places, 0.0)
	}
	return s
}
