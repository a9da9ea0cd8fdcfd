package domain

import "time"

// User is the domain entity for a user account. In the authenticated
// mode every task is exclusively owned by one user.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
