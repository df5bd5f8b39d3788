package security

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken(42, []string{RoleUser})
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, []string{RoleUser}, claims.Roles)
	assert.Equal(t, defaultJWTIssuer, claims.Issuer)
	assert.InDelta(t, defaultJWTExpiration.Seconds(), RemainingTTL(claims).Seconds(), 5)

	sig, err := ExtractSignature(token)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(token, "."+sig))
}

func TestToken_Rejected(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
	_, err = ExtractSignature("a.b")
	assert.Error(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &UserClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString(jwtSecret())
	require.NoError(t, err)
	_, err = ValidateToken(signed)
	assert.Error(t, err)

	assert.Zero(t, RemainingTTL(&UserClaims{}))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NoError(t, CheckPasswordHash("secret1", hash))
	assert.Error(t, CheckPasswordHash("secret2", hash))

	_, err = HashPassword("")
	assert.Error(t, err)
}
