package entity

import "time"

// Challenge is a pending one-time passcode for a user. A user holds at most
// one challenge at a time; issuing a new code replaces the previous one.
type Challenge struct {
	UserID    int64
	CodeHash  string
	Purpose   ChallengePurpose
	ExpiresAt time.Time
}
