// Package amount converts raw integer token values into exact decimal
// strings. On-chain values never pass through floats.
package amount

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// EthDecimals is the decimal precision of ether in wei.
const EthDecimals = 18

// ParseError reports a raw event field that is not parseable as an integer.
type ParseError struct {
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed %s: %q", e.Field, e.Value)
}

// FromBaseUnits converts an integer base-unit value into a decimal string
// using the given token decimal precision ("1500000" with decimals "6"
// becomes "1.5"). Trailing fraction zeros are trimmed.
func FromBaseUnits(value, decimals string) (string, error) {
	raw, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return "", &ParseError{Field: "value", Value: value}
	}
	prec, err := strconv.Atoi(decimals)
	if err != nil || prec < 0 {
		return "", &ParseError{Field: "tokenDecimal", Value: decimals}
	}
	return format(raw, prec), nil
}

// FromWei converts a wei value into a decimal ether string.
func FromWei(value string) (string, error) {
	raw, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return "", &ParseError{Field: "value", Value: value}
	}
	return format(raw, EthDecimals), nil
}

// IsPositive reports whether the integer string parses to a value > 0.
func IsPositive(value string) bool {
	raw, ok := new(big.Int).SetString(value, 10)
	return ok && raw.Sign() > 0
}

func format(raw *big.Int, decimals int) string {
	// big.Int Div/Mod round toward negative infinity; render negatives via
	// their magnitude so "-1500000" at 6 decimals is "-1.5", not "-2.5".
	if raw.Sign() < 0 {
		return "-" + format(new(big.Int).Neg(raw), decimals)
	}

	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	wholePart := new(big.Int).Div(raw, divisor)
	remainder := new(big.Int).Mod(raw, divisor)

	if remainder.Sign() == 0 {
		return wholePart.String()
	}

	// Pad the remainder with leading zeros to the full precision, then trim
	// trailing zeros.
	remainderStr := remainder.String()
	for len(remainderStr) < decimals {
		remainderStr = "0" + remainderStr
	}
	remainderStr = strings.TrimRight(remainderStr, "0")
	if remainderStr == "" {
		return wholePart.String()
	}
	return wholePart.String() + "." + remainderStr
}
