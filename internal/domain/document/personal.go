package document

import (
	"fmt"

	"github.com/iho/custodyledger/internal/domain"
)

// ValidatePersonal checks the two mod-11 check digits of an 11-digit
// personal identifier. s must already be normalized.
func ValidatePersonal(s string) error {
	if len(s) != domain.PersonalIDLength || !isDigits(s) {
		return fmt.Errorf("%w: expected %d digits", domain.ErrInvalidPersonalID, domain.PersonalIDLength)
	}

	d := digits(s)
	if allSame(d) {
		return fmt.Errorf("%w: repeated digits", domain.ErrInvalidPersonalID)
	}

	for pos := 9; pos <= 10; pos++ {
		if personalCheckDigit(d[:pos]) != d[pos] {
			return fmt.Errorf("%w: check digit %d mismatch", domain.ErrInvalidPersonalID, pos-8)
		}
	}

	return nil
}

// IsValidPersonal is the boolean form of ValidatePersonal.
func IsValidPersonal(s string) bool {
	return ValidatePersonal(s) == nil
}

// personalCheckDigit weights the prefix from len+1 down to 2.
func personalCheckDigit(prefix []int) int {
	top := len(prefix) + 1
	sum := weightedSum(prefix, func(i int) int { return top - i })

	check := 11 - sum%11
	if check > 9 {
		return 0
	}
	return check
}
