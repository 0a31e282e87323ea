package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taexpense/auth-service/pkg/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"  User@Example.COM  ":      "user@example.com",
		"first..last@example.com":   "first.last@example.com",
		".leading.dot@example.com":  "leading.dot@example.com",
		"user+tag@example.com":      "user+tag@example.com",
		"not-an-email":              "not-an-email",
		"too@many@ats":              "too@many@ats",
	}

	for input, want := range cases {
		assert.Equal(t, want, sanitizer.NormalizeEmail(input), input)
	}
}

func TestMaskEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "us***@example.com", sanitizer.MaskEmail("user@example.com"))
	assert.Equal(t, "a***@example.com", sanitizer.MaskEmail("ab@example.com"))
	assert.Equal(t, "not-an-email", sanitizer.MaskEmail("not-an-email"))
}
