package domain

import "errors"

// Authentication and account errors. Login deliberately collapses
// "unknown user" and "wrong password" into ErrInvalidCredentials so the
// two cases are indistinguishable to the caller.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
)

// Token errors. ErrInvalidIdentity is an issuance-time failure; the
// rest classify why verification rejected a presented token.
var (
	ErrInvalidIdentity       = errors.New("invalid identity for token issuance")
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenExpired          = errors.New("token is expired")
	ErrTokenInvalidSignature = errors.New("token signature is invalid")
	ErrTokenUnsupported      = errors.New("token algorithm is not supported")
)
