package tokens

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("access-secret")
	userID := uuid.New()

	raw, err := SignAccessToken(userID, "CUSTOMER", secret)
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(raw, secret)
	require.NoError(t, err)
	require.Equal(t, userID, claims.UserID)
	require.Equal(t, "CUSTOMER", claims.Role)

	_, err = AccessClaimsFromToken(raw, []byte("wrong-secret"))
	require.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	secret := []byte("refresh-secret")
	userID := uuid.New()

	raw, err := SignRefreshToken(userID, "ADMIN", secret)
	require.NoError(t, err)

	claims, err := RefreshClaimsFromToken(raw, secret)
	require.NoError(t, err)
	require.Equal(t, userID, claims.UserID)
	require.Equal(t, "refresh", claims.Type)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	secret := []byte("shared-secret")
	raw, err := SignAccessToken(uuid.New(), "CUSTOMER", secret)
	require.NoError(t, err)

	// Same secret, but the typ claim is missing.
	_, err = RefreshClaimsFromToken(raw, secret)
	require.Error(t, err)
}
