package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pranto48/lifeos-backend/pkg/logger"
)

// defaultSigningSecret is the historical fallback used when JWT_SECRET is not
// configured. Tokens signed with it are forgeable by anyone reading this
// source; NewTokenCodec warns loudly when it is in effect.
const defaultSigningSecret = "lifeos-self-hosted-jwt-secret-2024"

// tokenValidity is the only invalidation mechanism: there is no revocation.
const tokenValidity = 7 * 24 * time.Hour

// Claims is the stateless bearer token payload.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenCodec creates and verifies HMAC-SHA256 signed bearer tokens.
type TokenCodec struct {
	secret   []byte
	validity time.Duration
}

// NewTokenCodec builds a codec for the configured secret, falling back to the
// built-in default when unset.
func NewTokenCodec(secret string) *TokenCodec {
	if secret == "" {
		logger.L().Warn("JWT_SECRET not set, using built-in signing secret (INSECURE, set JWT_SECRET)")
		secret = defaultSigningSecret
	}
	return &TokenCodec{secret: []byte(secret), validity: tokenValidity}
}

// Issue signs a token for the user, valid for seven days.
func (c *TokenCodec) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.validity)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks the signature and expiry and returns the claims. Any failure
// mode (tampered signature, expired, garbage input) yields ok=false; nothing
// panics or propagates.
func (c *TokenCodec) Verify(tokenString string) (*Claims, bool) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}
