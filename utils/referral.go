package utils

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
	"unicode"
)

// GenerateReferralCode builds a referral code from the partner's name
// plus a random suffix. Format: {PREFIX}-{RANDOM} where PREFIX is up to
// four letters of the name and RANDOM is 6 alphanumeric characters.
// Example: PRIY-A3C7K2
func GenerateReferralCode(name string) (string, error) {
	prefix := namePrefix(name)

	// 4 random bytes give us 6 characters in base32
	randomBytes := make([]byte, 4)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", err
	}

	randomStr := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	randomStr = strings.ToUpper(randomStr[:6])

	return prefix + "-" + randomStr, nil
}

// namePrefix extracts up to four uppercase letters from the name,
// falling back to a generic prefix for names with no usable letters.
func namePrefix(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) && r < 128 {
			b.WriteRune(unicode.ToUpper(r))
			if b.Len() == 4 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "PTNR"
	}
	return b.String()
}
