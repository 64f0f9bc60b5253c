package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/taskflow/internal/domain"
)

// DefaultTokenTTL is how long an issued token remains valid.
const DefaultTokenTTL = 24 * time.Hour

// TokenClaims is the decoded payload of a bearer token.
type TokenClaims struct {
	UserID    int64
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenCodec issues and decodes HS256-signed JWTs carrying a user ID.
// Tokens are stateless: the server keeps no record of issued tokens, so a
// token cannot be revoked before its expiry.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec creates a TokenCodec signing with secret. The ttl is used
// as given: config validation keeps production TTLs positive, and tests
// construct codecs with a negative ttl to mint already-expired tokens.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue creates a signed token for the given user ID, valid from now until
// now plus the codec's TTL.
func (c *TokenCodec) Issue(userID int64) (string, error) {
	if userID <= 0 {
		return "", fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	now := c.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry of a token and returns its claims.
// An expired token fails with domain.ErrTokenExpired; any other defect (bad
// signature, wrong algorithm, unparsable structure) fails with
// domain.ErrTokenMalformed. Callers rely on the distinction: expiry is a
// normal lifecycle event, while a malformed token indicates tampering or a
// wrong secret.
func (c *TokenCodec) Decode(tokenString string) (TokenClaims, error) {
	if tokenString == "" {
		return TokenClaims{}, fmt.Errorf("%w: token is required", domain.ErrInvalidInput)
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenClaims{}, domain.ErrTokenExpired
		}
		return TokenClaims{}, domain.ErrTokenMalformed
	}
	if !token.Valid {
		return TokenClaims{}, domain.ErrTokenMalformed
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return TokenClaims{}, domain.ErrTokenMalformed
	}

	decoded := TokenClaims{UserID: userID}
	if claims.IssuedAt != nil {
		decoded.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		decoded.ExpiresAt = claims.ExpiresAt.Time
	}
	return decoded, nil
}
