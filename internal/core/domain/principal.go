package domain

// Principal is the identity resolved from a verified token for the
// duration of a single request. It lives only in the request context
// and is never persisted.
type Principal struct {
	Username      string
	Role          string
	Authenticated bool
}
