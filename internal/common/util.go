package common

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// RandomDigits returns a zero-padded numeric string of n digits drawn
// uniformly from [0, 10^n). Codes produced this way are short-lived and
// single-use; they are not meant to carry cryptographic strength.
//
// TODO: switch the source to crypto/rand once the OTP hardening ticket lands.
func RandomDigits(n int) string {
	max := 1
	for i := 0; i < n; i++ {
		max *= 10
	}
	return fmt.Sprintf("%0*d", n, rand.IntN(max))
}

// IsEmailAddress reports whether a contact identifier looks like an email
// address rather than a phone number. The presence of '@' is the single
// criterion; the rest of the system keys off the same check, so any change
// here must change everywhere.
func IsEmailAddress(contact string) bool {
	return strings.Contains(contact, "@")
}
