package entity

import "time"

// Employee is a persisted employee record.
// Salary and DateOfJoining are nil when never provided; ProfilePicture is the
// stored asset filename or empty.
type Employee struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	Position       string
	Salary         *float64
	Department     string
	DateOfJoining  *time.Time
	ProfilePicture string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasPicture reports whether the record references a stored asset.
func (e *Employee) HasPicture() bool { return e.ProfilePicture != "" }
