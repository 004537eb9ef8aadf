package utils

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referralCodeFormat = regexp.MustCompile(`^[A-Z]{1,4}-[A-Z2-7]{6}$`)

func TestGenerateReferralCodeFormat(t *testing.T) {
	code, err := GenerateReferralCode("Priya Sharma")
	require.NoError(t, err)

	assert.Regexp(t, referralCodeFormat, code)
	assert.True(t, strings.HasPrefix(code, "PRIY-"))
}

func TestGenerateReferralCodeShortName(t *testing.T) {
	code, err := GenerateReferralCode("Al")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(code, "AL-"))
}

func TestGenerateReferralCodeFallbackPrefix(t *testing.T) {
	for _, name := range []string{"", "1234", "!!!"} {
		code, err := GenerateReferralCode(name)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(code, "PTNR-"), "name %q produced %s", name, code)
	}
}

func TestGenerateReferralCodeUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateReferralCode("Priya")
		require.NoError(t, err)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestNamePrefixSkipsNonLetters(t *testing.T) {
	assert.Equal(t, "OMAL", namePrefix("O'Malley"))
	assert.Equal(t, "JDOE", namePrefix("J. Doe 42"))
	assert.Equal(t, "LI", namePrefix("Li 88"))
}
