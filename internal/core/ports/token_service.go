package ports

import "github.com/openblog/blog-api/internal/core/domain"

// TokenService issues and verifies signed, time-limited identity tokens.
// Both operations are pure functions of their input, the current time
// and the fixed signing key.
type TokenService interface {
	// Issue signs a token asserting username and role. Fails with
	// domain.ErrInvalidIdentity when username is blank.
	Issue(username, role string) (string, error)
	// Verify parses and validates a token, returning the principal it
	// asserts. Failures are classified as domain.ErrTokenMalformed,
	// ErrTokenExpired, ErrTokenInvalidSignature or ErrTokenUnsupported.
	Verify(token string) (*domain.Principal, error)
}
