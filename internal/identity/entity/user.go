package entity

import "time"

// User is an account identified by its email address. Accounts start
// unverified and become verified after the owner proves control of the
// mailbox with a one-time passcode.
type User struct {
	ID         int64
	Email      string
	FullName   string
	Age        int32
	IsVerified bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
