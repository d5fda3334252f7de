package domain

import "time"

// RoleUser is the role assigned to every account at registration.
// It is the only role the system currently issues.
const RoleUser = "USER"

// User models a registered account. An empty PasswordHash marks an
// identity created through a federated login with no local password.
type User struct {
	ID           string    `json:"id,omitempty"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// External reports whether the account was created through a federated
// login and therefore has no local password to verify against.
func (u *User) External() bool {
	return u.PasswordHash == ""
}
