package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hongminglow/safeguard/internal/models"
)

// ErrInvalidToken is returned by Parse for any token that fails verification.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the claims carried by issued tokens. UserID mirrors the subject
// under the "id" key older clients read.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed JWTs for authenticated users.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	method jwt.SigningMethod
	now    func() time.Time
}

// NewTokenManager creates a manager with the provided secret, issuer, and lifetime.
// method must name an HMAC algorithm (HS256, HS384, HS512); anything else falls back to HS256.
func NewTokenManager(secret, issuer, method string, ttl time.Duration) *TokenManager {
	sm, ok := jwt.GetSigningMethod(method).(*jwt.SigningMethodHMAC)
	if !ok {
		sm = jwt.SigningMethodHS256
	}
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		method: sm,
		now:    time.Now,
	}
}

// TTL reports the lifetime of issued tokens.
func (t *TokenManager) TTL() time.Duration {
	return t.ttl
}

// Generate issues a signed JWT whose subject is the user's id.
func (t *TokenManager) Generate(user models.User) (string, error) {
	if user.ID == "" {
		return "", errors.New("generate token: empty user id")
	}
	now := t.now()
	claims := Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(t.method, claims)
	return token.SignedString(t.secret)
}

// Parse verifies signature, algorithm, issuer and expiry and returns the claims.
func (t *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{t.method.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
