package entity

import (
	"time"
)

// User is the aggregate root for the credential store.
// Password holds the bcrypt hash and never leaves the service layer.
type User struct {
	ID        string
	Username  string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
