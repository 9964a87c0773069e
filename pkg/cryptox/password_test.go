package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"short password", "123456"},
		{"empty password", ""},
		{"unicode password", "пароль密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hash)

			// bcrypt modular crypt format with our cost factor
			require.True(t, strings.HasPrefix(hash, "$2a$10$"),
				"digest should carry cost %d", HashCost)

			require.NoError(t, VerifyPassword(tt.password, hash))
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	password := "samepassword"

	hash1, err := HashPassword(password)
	require.NoError(t, err)

	hash2, err := HashPassword(password)
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	require.ErrorIs(t, VerifyPassword("battery staple", hash), ErrMismatch)
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	// A corrupt stored digest reads as "not matched", never as a panic or a
	// distinct error the handler would map to a 500.
	for _, digest := range []string{"", "not-a-bcrypt-hash", "$2a$10$tooshort"} {
		require.ErrorIs(t, VerifyPassword("anything", digest), ErrMismatch)
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	// bcrypt rejects passwords over 72 bytes; the caller surfaces this as a
	// server error.
	_, err := HashPassword(strings.Repeat("a", 100))
	require.Error(t, err)
}
