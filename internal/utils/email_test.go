package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"alice@example.com",
		"alice.b@sub.example.co",
		"a+tag@example.fr",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"pas-un-email",
		"@example.com",
		"alice@",
		"alice@localhost", // domaine sans point refusé
		"alice @example.com",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}
