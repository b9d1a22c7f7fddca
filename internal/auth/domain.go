package auth

import (
	"strings"
	"time"
)

// Role values stored on user records. RoleMember is assigned when
// registration omits a role.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User represents a registered account.
type User struct {
	ID           int64
	Prefix       string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Faculty      *string
	Role         string
	CreatedAt    time.Time
}

// DisplayName joins prefix, first and last name with single spaces,
// skipping empty components.
func (u *User) DisplayName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{u.Prefix, u.FirstName, u.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
