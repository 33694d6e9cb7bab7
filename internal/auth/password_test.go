package auth_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomlord1122/todo-dashboard/internal/auth"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name    string
		arrange func() string
		act     func(plain string) (string, error)
		assert  func(t *testing.T, hashed string, err error)
	}{
		{
			name:    "Should hash the password",
			arrange: func() string { return "ChangeMe123!" },
			act:     auth.HashPassword,
			assert: func(t *testing.T, hashed string, err error) {
				require.NoError(t, err)
				parts := strings.Split(hashed, "$")
				require.Len(t, parts, 6)
				assert.Equal(t, "argon2id", parts[1])
				assert.Equal(t, "v=19", parts[2])
				assert.Equal(t, "m=65536,t=3,p=2", parts[3])
				assert.Len(t, parts[4], base64.RawStdEncoding.EncodedLen(16))
				assert.Len(t, parts[5], base64.RawStdEncoding.EncodedLen(32))
			},
		},
		{
			name:    "Should salt every hash",
			arrange: func() string { return "ChangeMe123!" },
			act: func(plain string) (string, error) {
				first, err := auth.HashPassword(plain)
				if err != nil {
					return "", err
				}
				second, err := auth.HashPassword(plain)
				if err != nil {
					return "", err
				}
				if first == second {
					return "", assert.AnError
				}
				return second, nil
			},
			assert: func(t *testing.T, hashed string, err error) {
				assert.NoError(t, err)
				assert.NotEmpty(t, hashed)
			},
		},
		{
			name:    "Should reject an empty password",
			arrange: func() string { return "" },
			act:     auth.HashPassword,
			assert: func(t *testing.T, hashed string, err error) {
				assert.Error(t, err)
				assert.Empty(t, hashed)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain := tt.arrange()
			hashed, err := tt.act(plain)
			tt.assert(t, hashed, err)
		})
	}
}

func TestVerifyPassword(t *testing.T) {
	encoded, err := auth.HashPassword("mysecret1")
	require.NoError(t, err)

	tests := []struct {
		name   string
		plain  string
		hash   string
		assert func(t *testing.T, err error)
	}{
		{
			name:  "Should verify the correct password",
			plain: "mysecret1",
			hash:  encoded,
			assert: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:  "Should reject a wrong password",
			plain: "wrongsecret",
			hash:  encoded,
			assert: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, auth.ErrPasswordMismatch)
			},
		},
		{
			name:  "Should reject a malformed hash",
			plain: "mysecret1",
			hash:  "invalid-hash",
			assert: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "invalid hash format")
			},
		},
		{
			name:  "Should reject a bad salt",
			plain: "mysecret1",
			hash:  "$argon2id$v=19$m=65536,t=3,p=2$!!!$AAAA",
			assert: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "invalid salt encoding")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.assert(t, auth.VerifyPassword(tt.plain, tt.hash))
		})
	}
}
