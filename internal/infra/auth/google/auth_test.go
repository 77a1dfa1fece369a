package google

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SookX/Demeter/config"
)

const testKeyID = "test-key-1"

func newTestService(t *testing.T, signingKey *rsa.PrivateKey) *AuthService {
	t.Helper()

	cfg := &config.Config{
		GoogleOAuth: &config.GoogleOAuthConfig{
			ClientID:    "demeter-client-id",
			RedirectURI: "https://demeter.test/auth/google/callback",
		},
	}

	svc, ok := NewAuthService(cfg, slog.Default()).(*AuthService)
	require.True(t, ok)

	httpmock.ActivateNonDefault(svc.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	jwks, err := json.Marshal(jwksDocument{Keys: []jwksKey{{
		Kty: "RSA",
		Kid: testKeyID,
		N:   base64.RawURLEncoding.EncodeToString(signingKey.PublicKey.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(signingKey.PublicKey.E)).Bytes()),
	}}})
	require.NoError(t, err)

	httpmock.RegisterResponder("GET", googleJWKSURL,
		httpmock.NewStringResponder(200, string(jwks)))

	return svc
}

func generateKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	return key
}

func signIDToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid

	signed, err := token.SignedString(key)
	require.NoError(t, err)

	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"iss":            "https://accounts.google.com",
		"sub":            "google-user-42",
		"aud":            "demeter-client-id",
		"exp":            time.Now().Add(time.Hour).Unix(),
		"iat":            time.Now().Unix(),
		"email":          "gardener@example.com",
		"email_verified": true,
		"name":           "Gardener",
		"picture":        "https://example.com/avatar.png",
	}
}

func TestAuthService_VerifyIDToken(t *testing.T) {
	key := generateKey(t)
	svc := newTestService(t, key)

	idToken := signIDToken(t, key, testKeyID, validClaims())

	user, err := svc.VerifyIDToken(context.Background(), idToken)
	require.NoError(t, err)
	assert.Equal(t, "google-user-42", user.ID)
	assert.Equal(t, "gardener@example.com", user.Email)
	assert.True(t, user.EmailVerified)
}

func TestAuthService_VerifyIDTokenCachesKeys(t *testing.T) {
	key := generateKey(t)
	svc := newTestService(t, key)

	for range 3 {
		_, err := svc.VerifyIDToken(context.Background(), signIDToken(t, key, testKeyID, validClaims()))
		require.NoError(t, err)
	}

	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestAuthService_VerifyIDTokenRejectsForeignSignature(t *testing.T) {
	key := generateKey(t)
	svc := newTestService(t, key)

	// Signed with a key Google never published.
	forged := signIDToken(t, generateKey(t), testKeyID, validClaims())

	_, err := svc.VerifyIDToken(context.Background(), forged)
	assert.Error(t, err)
}

func TestAuthService_VerifyIDTokenRejectsUnknownKeyID(t *testing.T) {
	key := generateKey(t)
	svc := newTestService(t, key)

	idToken := signIDToken(t, key, "retired-key", validClaims())

	_, err := svc.VerifyIDToken(context.Background(), idToken)
	assert.Error(t, err)
}

func TestAuthService_VerifyIDTokenRejectsWrongAudience(t *testing.T) {
	key := generateKey(t)
	svc := newTestService(t, key)

	claims := validClaims()
	claims["aud"] = "someone-else"

	_, err := svc.VerifyIDToken(context.Background(), signIDToken(t, key, testKeyID, claims))
	assert.Error(t, err)
}

func TestAuthService_VerifyIDTokenRejectsExpired(t *testing.T) {
	key := generateKey(t)
	svc := newTestService(t, key)

	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()

	_, err := svc.VerifyIDToken(context.Background(), signIDToken(t, key, testKeyID, claims))
	assert.Error(t, err)
}
