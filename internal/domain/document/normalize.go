package document

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/iho/custodyledger/internal/domain"
)

// Normalize strips separators from raw and validates the remaining digits
// against the identifier rules of kind.
func Normalize(raw string, kind domain.AccountKind) (string, error) {
	var (
		invalid  error
		validate func(string) error
	)
	switch kind {
	case domain.KindHolder:
		invalid, validate = domain.ErrInvalidPersonalID, ValidatePersonal
	case domain.KindMerchant:
		invalid, validate = domain.ErrInvalidMerchantID, ValidateMerchant
	default:
		return "", fmt.Errorf("%w: unknown account kind %d", domain.ErrValidation, kind)
	}

	digits := strip(raw)
	if n := kind.IdentifierLength(); len(digits) != n || !isDigits(digits) {
		return "", fmt.Errorf("%w: %q does not have %d digits", invalid, raw, n)
	}
	if err := validate(digits); err != nil {
		return "", err
	}
	return digits, nil
}

// Format renders normalized digits in the conventional punctuated layout,
// 000.000.000-00 for holders and 00.000.000/0000-00 for merchants.
// Input of the wrong length is returned unchanged.
func Format(digits string, kind domain.AccountKind) string {
	if len(digits) != kind.IdentifierLength() {
		return digits
	}
	switch kind {
	case domain.KindHolder:
		return digits[0:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:]
	case domain.KindMerchant:
		return digits[0:2] + "." + digits[2:5] + "." + digits[5:8] + "/" + digits[8:12] + "-" + digits[12:]
	default:
		return digits
	}
}

func strip(raw string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '.', r == '-', r == '/', unicode.IsSpace(r):
			return -1
		default:
			return r
		}
	}, raw)
}
