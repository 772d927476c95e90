package utils

import (
	"math/big"
	"strings"
)

// GweiDecimals is the number of decimals between wei and gwei.
const GweiDecimals = 9

// FormatBigInt converts a big.Int value to a human-readable string,
// considering the given number of decimals.
// Example: amount=1234500000000000000, decimals=18 => "1.2345"
func FormatBigInt(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	if decimals == 0 {
		return amount.String()
	}

	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	intPart, frac := new(big.Int).QuoRem(new(big.Int).Abs(amount), divisor, new(big.Int))

	fracStr := frac.String()
	fracStr = strings.Repeat("0", int(decimals)-len(fracStr)) + fracStr
	fracStr = strings.TrimRight(fracStr, "0")

	var sb strings.Builder
	if amount.Sign() < 0 {
		sb.WriteByte('-')
	}
	sb.WriteString(intPart.String())
	if fracStr != "" {
		sb.WriteByte('.')
		sb.WriteString(fracStr)
	}
	return sb.String()
}

// FormatWeiAsGwei renders a wei amount in gwei.
func FormatWeiAsGwei(wei *big.Int) string {
	return FormatBigInt(wei, GweiDecimals)
}

// FormatUint64WeiAsGwei renders a uint64 wei amount in gwei.
func FormatUint64WeiAsGwei(wei uint64) string {
	return FormatWeiAsGwei(new(big.Int).SetUint64(wei))
}
