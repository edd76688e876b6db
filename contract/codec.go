package contract

import (
	"math/big"
	"strconv"
	"strings"

	"attack_game/sdk"
)

const fieldSep = "|"

// -----------------------------------------------------------------------------
// Team Meta Encoding
// -----------------------------------------------------------------------------

// encodeTeamMeta serializes TeamMeta to a pipe-delimited string.
// Format: asset|founderTax|createdAt
func encodeTeamMeta(meta *TeamMeta) string {
	tax := "0"
	if meta.FounderTax != nil {
		tax = meta.FounderTax.RatString()
	}
	return meta.Asset.String() + fieldSep + tax + fieldSep + strconv.FormatInt(meta.CreatedAt, 10)
}

// decodeTeamMeta deserializes a pipe-delimited string to TeamMeta.
func decodeTeamMeta(data string) (*TeamMeta, error) {
	parts := strings.Split(data, fieldSep)
	if len(parts) != 3 {
		return nil, ErrCorruptState.withDetail("team meta")
	}
	tax, ok := new(big.Rat).SetString(parts[1])
	if !ok {
		return nil, ErrCorruptState.withDetail("team tax")
	}
	createdAt, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return nil, ErrCorruptState.withDetail("team created_at")
	}
	return &TeamMeta{
		Asset:      sdk.Asset(parts[0]),
		FounderTax: tax,
		CreatedAt:  createdAt,
	}, nil
}

// -----------------------------------------------------------------------------
// Team Index Encoding
// -----------------------------------------------------------------------------

// encodeTeamIndex joins team ids; ids never contain the separator.
func encodeTeamIndex(ids []sdk.Address) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, fieldSep)
}

func decodeTeamIndex(data string) []sdk.Address {
	if data == "" {
		return nil
	}
	parts := strings.Split(data, fieldSep)
	ids := make([]sdk.Address, len(parts))
	for i, p := range parts {
		ids[i] = sdk.Address(p)
	}
	return ids
}

// -----------------------------------------------------------------------------
// Field Parsers
// -----------------------------------------------------------------------------

// parseFounderTax turns the raw founder_tax literal into an exact rational.
// Accepts decimals like 0.5 or 1e-7, bare or quoted; empty means no tax. Base
// prefixes are refused and exponents are bounded, 1e-99999999 would otherwise blow up.
func parseFounderTax(raw string) (*big.Rat, error) {
	raw = strings.TrimSpace(raw)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	if raw == "" || raw == "null" {
		return new(big.Rat), nil
	}
	if len(raw) > MaxFounderTaxLength || !isDecimalLiteral(raw) {
		return nil, ErrInvalidTax
	}
	tax, ok := new(big.Rat).SetString(raw)
	if !ok {
		return nil, ErrInvalidTax
	}
	if tax.Sign() < 0 || tax.Cmp(big.NewRat(1, 1)) >= 0 {
		return nil, ErrInvalidTax
	}
	return tax, nil
}

// isDecimalLiteral accepts a plain decimal with an optional exponent of at most
// MaxFounderTaxExponent in magnitude.
func isDecimalLiteral(s string) bool {
	mantissa, exp, found := strings.Cut(strings.ToLower(s), "e")
	if found {
		n, err := strconv.Atoi(exp)
		if err != nil || n < -MaxFounderTaxExponent || n > MaxFounderTaxExponent {
			return false
		}
	}
	return mantissa != "" && isPlainDecimal(mantissa)
}

// isPlainDecimal accepts an optional sign, digits and at most one dot.
func isPlainDecimal(s string) bool {
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			digits++
		case s[i] == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// parseUintValue reads a decimal counter from state, nil meaning zero.
func parseUintValue(ptr *string, field string) (uint64, error) {
	if ptr == nil || *ptr == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(*ptr, 10, 64)
	if err != nil {
		return 0, ErrCorruptState.withDetail(field)
	}
	return n, nil
}

// UInt64ToString turns an amount into decimal text for logs and response vars.
// Example payload: UInt64ToString(9001)
func UInt64ToString(val uint64) string {
	return strconv.FormatUint(val, 10)
}
