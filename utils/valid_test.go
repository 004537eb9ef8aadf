package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "himalayan-green-tea", Slugify("Himalayan Green Tea"))
	assert.Equal(t, "ayurveda-101-basics", Slugify("  Ayurveda 101: Basics!  "))
	assert.Equal(t, "tea", Slugify("---Tea---"))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestSanitizeEmail(t *testing.T) {
	email, err := SanitizeEmail("  Buyer@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", email)

	_, err = SanitizeEmail("not-an-email")
	assert.Error(t, err)
}

func TestSanitizePhone(t *testing.T) {
	phone, err := SanitizePhone("+91 98765-43210")
	require.NoError(t, err)
	assert.Equal(t, "+919876543210", phone)

	phone, err = SanitizePhone("")
	require.NoError(t, err)
	assert.Empty(t, phone, "phone is optional")

	_, err = SanitizePhone("123")
	assert.Error(t, err)
}

func TestSanitizeInputEscapesHTML(t *testing.T) {
	assert.Equal(t, "&lt;script&gt;", SanitizeInput(" <script> "))
}
