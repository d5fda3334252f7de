package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/openblog/blog-api/internal/core/domain"
)

// minSecretLen is the minimum signing key size for HS256. A shorter key
// is a startup configuration error, never silently tolerated.
const minSecretLen = 32

const defaultTTL = time.Hour

// errUnexpectedAlg marks tokens whose header declares an algorithm other
// than HS256. It is returned from the keyfunc so the parse error chain
// can be classified as unsupported rather than a bad signature.
var errUnexpectedAlg = errors.New("unexpected signing algorithm")

// TokenService issues and verifies HS256 JWTs carrying the subject
// username and a role claim. It holds only immutable configuration, so
// concurrent use needs no locking.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService validates the signing key and returns a ready service.
func NewTokenService(secret []byte, ttl time.Duration) (*TokenService, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("token: signing key must be at least %d bytes, got %d", minSecretLen, len(secret))
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &TokenService{secret: secret, ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for the given identity with a fixed validity
// window starting now.
func (s *TokenService) Issue(username, role string) (string, error) {
	if strings.TrimSpace(username) == "" {
		return "", domain.ErrInvalidIdentity
	}

	now := s.now().UTC()
	claims := jwt.MapClaims{
		"sub":  username,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates a token and returns the principal it
// asserts. All failures map onto the domain token error set.
func (s *TokenService) Verify(token string) (*domain.Principal, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.ErrTokenMalformed
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errUnexpectedAlg
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, classifyParseError(err)
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenMalformed
	}

	// The parser already rejects expired tokens; re-check here so the
	// "expiration <= now" boundary holds even if parser defaults change.
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil || !exp.After(s.now()) {
		return nil, domain.ErrTokenExpired
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, domain.ErrTokenMalformed
	}
	role, _ := claims["role"].(string)

	return &domain.Principal{Username: sub, Role: role, Authenticated: true}, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, errUnexpectedAlg):
		return domain.ErrTokenUnsupported
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.ErrTokenInvalidSignature
	default:
		return domain.ErrTokenMalformed
	}
}
