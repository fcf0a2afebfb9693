package roomcore

import (
	"fmt"
	"math/big"
	"strings"
)

// PriceDecimals is the number of decimals of the chain's base unit.
const PriceDecimals = 18

// ParsePrice converts a decimal price string into base units.
// Blank input counts as "0". Signs, exponents and more than PriceDecimals
// fractional digits are rejected with ErrInvalidPrice.
func ParsePrice(s string) (*big.Int, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return big.NewInt(0), nil
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	if !digitsOnly(intPart) || !digitsOnly(fracPart) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	if len(fracPart) > PriceDecimals {
		return nil, fmt.Errorf("%w: %q has more than %d fractional digits", ErrInvalidPrice, s, PriceDecimals)
	}
	fracPart += strings.Repeat("0", PriceDecimals-len(fracPart))
	clean := strings.TrimLeft(intPart+fracPart, "0")
	if clean == "" {
		return big.NewInt(0), nil
	}
	v, ok := new(big.Int).SetString(clean, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	return v, nil
}

// FormatPrice renders base units as a decimal string without trailing zeros.
func FormatPrice(v *big.Int) string {
	return formatUnits(v, PriceDecimals)
}

func formatUnits(v *big.Int, decimals int) string {
	if v == nil { return "0" }
	if decimals <= 0 { return v.String() }
	s := new(big.Int).Abs(v).String()
	neg := v.Sign() < 0
	var out string
	if len(s) <= decimals {
		frac := strings.TrimRight(strings.Repeat("0", decimals-len(s))+s, "0")
		out = "0"
		if frac != "" { out = "0." + frac }
	} else {
		out = s[:len(s)-decimals]
		if frac := strings.TrimRight(s[len(s)-decimals:], "0"); frac != "" {
			out += "." + frac
		}
	}
	if neg { return "-" + out }
	return out
}

func gweiToWei(g int64) *big.Int {
	x := new(big.Int).SetInt64(g)
	return x.Mul(x, big.NewInt(1_000_000_000))
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
