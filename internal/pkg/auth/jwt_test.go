package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "access-secret",
		AccessTokenExp: time.Hour,
		AdminTokenExp:  24 * time.Hour,
		ResetSecretKey: "reset-secret",
		ResetTokenExp:  5 * time.Minute,
		TokenIssuer:    "kithab.test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()
	svc := newTestService()

	token, err := svc.GenerateToken(42, "faculty")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "faculty", claims.Role)
	assert.Equal(t, "kithab.test", claims.Issuer)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	t.Parallel()
	svc := NewJWTService(JWTConfig{
		SecretKey:      "access-secret",
		AccessTokenExp: -time.Minute,
		TokenIssuer:    "kithab.test",
	})

	token, err := svc.GenerateToken(1, "student")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestWrongSecretIsRejected(t *testing.T) {
	t.Parallel()
	svc := newTestService()
	other := NewJWTService(JWTConfig{
		SecretKey:      "different-secret",
		AccessTokenExp: time.Hour,
	})

	token, err := other.GenerateToken(1, "student")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetTokensUseSeparateSecret(t *testing.T) {
	t.Parallel()
	svc := newTestService()

	resetToken, err := svc.GenerateResetToken(7, "student")
	require.NoError(t, err)
	accessToken, err := svc.GenerateToken(7, "student")
	require.NoError(t, err)

	// Each kind validates only against its own secret.
	claims, err := svc.ValidateResetToken(resetToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)

	_, err = svc.ValidateToken(resetToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.ValidateResetToken(accessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGarbageTokenIsRejected(t *testing.T) {
	t.Parallel()
	svc := newTestService()

	_, err := svc.ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"case insensitive scheme", "bearer abc.def.ghi", "abc.def.ghi", nil},
		{"empty header", "", "", ErrInvalidFormat},
		{"missing token", "Bearer ", "", ErrInvalidFormat},
		{"wrong scheme", "Basic abc.def.ghi", "", ErrInvalidFormat},
		{"no scheme", "abc.def.ghi", "", ErrInvalidFormat},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			token, err := ExtractBearerToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}
