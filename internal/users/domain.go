package users

import "time"

// User is the directory projection of an account. The password hash is
// never part of it.
type User struct {
	ID        int64
	Name      string
	Email     string
	Faculty   *string
	Role      string
	CreatedAt time.Time
}
