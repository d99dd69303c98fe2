package outcome

import (
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// CouponPrefix starts every issued code.
const CouponPrefix = "OUTWIT-AI-"

const couponSuffixLen = 5

// NewCouponCode returns a code of the form OUTWIT-AI-XXXXX where X is an
// upper-case base-36 digit. The randomness comes from a v4 UUID.
func NewCouponCode() string {
	id := uuid.New()
	n := new(big.Int).SetBytes(id[:])
	digits := strings.ToUpper(n.Text(36))
	for len(digits) < couponSuffixLen {
		digits = "0" + digits
	}
	return CouponPrefix + digits[len(digits)-couponSuffixLen:]
}

// ValidCouponCode reports whether code has the issued shape.
func ValidCouponCode(code string) bool {
	suffix, ok := strings.CutPrefix(code, CouponPrefix)
	if !ok || len(suffix) != couponSuffixLen {
		return false
	}
	for _, r := range suffix {
		if !(r >= '0' && r <= '9') && !(r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
