// Package google implements Google Sign-In verification for the OAuth
// authentication service interface.
package google

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SookX/Demeter/config"
	"github.com/SookX/Demeter/internal/domain/entity"
	"github.com/SookX/Demeter/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

const (
	googleOAuthURL = "https://accounts.google.com/o/oauth2/v2/auth"
	googleJWKSURL  = "https://www.googleapis.com/oauth2/v3/certs"

	jwksCacheTTL    = time.Hour
	jwksFetchLimit  = 1 << 20
	jwksHTTPTimeout = 10 * time.Second
)

// IDTokenClaims represents the claims in a Google ID token
type IDTokenClaims struct {
	Iss           string `json:"iss"`            // Issuer
	Sub           string `json:"sub"`            // Subject (user ID)
	Aud           string `json:"aud"`            // Audience (client ID)
	Exp           int64  `json:"exp"`            // Expiration time
	Iat           int64  `json:"iat"`            // Issued at
	Email         string `json:"email"`          // User's email
	EmailVerified bool   `json:"email_verified"` // Email verification status
	Name          string `json:"name"`           // User's full name
	Picture       string `json:"picture"`        // User's profile picture
}

// AuthService implements service.OAuthAuthService for Google Sign-In.
type AuthService struct {
	clientID    string
	redirectURI string
	jwksURL     string
	httpClient  *http.Client
	keyCache    *gocache.Cache
	logger      *slog.Logger
}

// NewAuthService creates a new Google AuthService
func NewAuthService(cfg *config.Config, logger *slog.Logger) service.OAuthAuthService {
	svc := &AuthService{
		jwksURL:    googleJWKSURL,
		httpClient: &http.Client{Timeout: jwksHTTPTimeout},
		keyCache:   gocache.New(jwksCacheTTL, 10*time.Minute),
		logger:     logger,
	}
	if cfg.GoogleOAuth != nil {
		svc.clientID = cfg.GoogleOAuth.ClientID
		svc.redirectURI = cfg.GoogleOAuth.RedirectURI
	}

	return svc
}

// BuildAuthorizationURL constructs the Google Sign-In URL for the
// browser-redirect flow.
func (s *AuthService) BuildAuthorizationURL() string {
	params := url.Values{}
	params.Set("client_id", s.clientID)
	params.Set("redirect_uri", s.redirectURI)
	params.Set("scope", "openid profile email")
	params.Set("response_type", "id_token")

	return googleOAuthURL + "?" + params.Encode()
}

// VerifyIDToken implements service.OAuthAuthService interface
func (s *AuthService) VerifyIDToken(ctx context.Context, idToken string) (*service.OAuthUser, error) {
	if err := s.verifySignature(ctx, idToken); err != nil {
		s.logger.Error("ID token signature verification failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "invalid ID token")
	}

	claims, err := s.parseIDToken(idToken)
	if err != nil {
		s.logger.Error("Failed to parse ID token", slog.Any("error", err))

		return nil, errors.Wrap(err, "invalid ID token")
	}

	if err := s.verifyTokenClaims(claims); err != nil {
		s.logger.Error("Token verification failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "token verification failed")
	}

	oauthUser := &service.OAuthUser{
		ID:            claims.Sub,
		Email:         claims.Email,
		Name:          claims.Name,
		Provider:      entity.ProviderTypeGoogle,
		AvatarURL:     claims.Picture,
		EmailVerified: claims.EmailVerified,
	}

	s.logger.Info("Google ID token verified",
		slog.String("userID", oauthUser.ID),
		slog.String("email", oauthUser.Email))

	return oauthUser, nil
}

// GetProvider returns the OAuth provider type
func (s *AuthService) GetProvider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}

// verifySignature checks the token's RS256 signature against Google's
// published JWKS. Claim validation stays in verifyTokenClaims.
func (s *AuthService) verifySignature(ctx context.Context, idToken string) error {
	_, err := jwt.Parse(idToken, func(token *jwt.Token) (interface{}, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token has no key id")
		}

		return s.signingKey(ctx, kid)
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithoutClaimsValidation())

	return errors.Wrap(err, "signature verification failed")
}

// signingKey resolves a Google public key by key id, fetching and caching the
// JWKS document on miss.
func (s *AuthService) signingKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	if cached, found := s.keyCache.Get(kid); found {
		if key, ok := cached.(*rsa.PublicKey); ok {
			return key, nil
		}
	}

	if err := s.refreshKeys(ctx); err != nil {
		return nil, err
	}

	cached, found := s.keyCache.Get(kid)
	if !found {
		return nil, errors.Errorf("unknown signing key id: %s", kid)
	}

	key, ok := cached.(*rsa.PublicKey)
	if !ok {
		return nil, errors.Errorf("unexpected key type for key id: %s", kid)
	}

	return key, nil
}

// jwksDocument is the JSON Web Key Set published by Google.
type jwksDocument struct {
	Keys []jwksKey `json:"keys"`
}

type jwksKey struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// refreshKeys fetches the JWKS document and caches every RSA key by key id.
func (s *AuthService) refreshKeys(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.jwksURL, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build JWKS request")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to fetch JWKS")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("JWKS endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, jwksFetchLimit))
	if err != nil {
		return errors.Wrap(err, "failed to read JWKS response")
	}

	var doc jwksDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return errors.Wrap(err, "failed to parse JWKS response")
	}

	for _, key := range doc.Keys {
		if key.Kty != "RSA" || key.Kid == "" {
			continue
		}

		publicKey, err := parseRSAKey(key)
		if err != nil {
			s.logger.Warn("Skipping unparseable JWKS key", slog.String("kid", key.Kid), slog.Any("error", err))

			continue
		}

		s.keyCache.Set(key.Kid, publicKey, gocache.DefaultExpiration)
	}

	return nil
}

// parseRSAKey builds an RSA public key from the JWKS modulus and exponent.
func parseRSAKey(key jwksKey) (*rsa.PublicKey, error) {
	modulus, err := base64.RawURLEncoding.DecodeString(key.N)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode key modulus")
	}

	exponent, err := base64.RawURLEncoding.DecodeString(key.E)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode key exponent")
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(modulus),
		E: int(new(big.Int).SetBytes(exponent).Int64()),
	}, nil
}

// parseIDToken parses the JWT token and extracts claims
func (s *AuthService) parseIDToken(token string) (*IDTokenClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errors.New("invalid JWT format")
	}

	decoded, err := base64Decode(parts[1])
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode token payload")
	}

	var claims IDTokenClaims
	if err := json.Unmarshal(decoded, &claims); err != nil {
		return nil, errors.Wrap(err, "failed to parse token claims")
	}

	return &claims, nil
}

// verifyTokenClaims verifies the token claims
func (s *AuthService) verifyTokenClaims(claims *IDTokenClaims) error {
	// Check issuer
	if claims.Iss != "https://accounts.google.com" && claims.Iss != "accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", claims.Iss)
	}

	// Check audience (client ID)
	if claims.Aud != s.clientID {
		return errors.Errorf("invalid audience: expected %s, got %s", s.clientID, claims.Aud)
	}

	// Check expiration
	now := time.Now().Unix()
	if claims.Exp < now {
		return errors.Errorf("token expired: expired at %d, current time %d", claims.Exp, now)
	}

	// Check email verification
	if !claims.EmailVerified {
		return errors.New("email not verified")
	}

	return nil
}

// base64Decode decodes base64 URL-safe string
func base64Decode(str string) ([]byte, error) {
	// Replace URL-safe characters
	str = strings.ReplaceAll(str, "-", "+")
	str = strings.ReplaceAll(str, "_", "/")

	// Add padding if needed
	if len(str)%4 != 0 {
		str += strings.Repeat("=", 4-len(str)%4)
	}

	decoded, err := base64.StdEncoding.DecodeString(str)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode base64 string")
	}

	return decoded, nil
}
