package document

import (
	"fmt"

	"github.com/iho/custodyledger/internal/domain"
)

// ValidateMerchant checks the two mod-11 check digits of a 14-digit
// merchant identifier. s must already be normalized.
func ValidateMerchant(s string) error {
	if len(s) != domain.MerchantIDLength || !isDigits(s) {
		return fmt.Errorf("%w: expected %d digits", domain.ErrInvalidMerchantID, domain.MerchantIDLength)
	}

	d := digits(s)
	if allSame(d) {
		return fmt.Errorf("%w: repeated digits", domain.ErrInvalidMerchantID)
	}

	for pos := 12; pos <= 13; pos++ {
		if merchantCheckDigit(d[:pos]) != d[pos] {
			return fmt.Errorf("%w: check digit %d mismatch", domain.ErrInvalidMerchantID, pos-11)
		}
	}

	return nil
}

// IsValidMerchant is the boolean form of ValidateMerchant.
func IsValidMerchant(s string) bool {
	return ValidateMerchant(s) == nil
}

// merchantCheckDigit applies the cyclic weights 2..9 from the rightmost
// prefix digit leftwards.
func merchantCheckDigit(prefix []int) int {
	last := len(prefix) - 1
	sum := weightedSum(prefix, func(i int) int { return 2 + (last-i)%8 })

	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}
