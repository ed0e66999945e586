package domain

import "time"

type User struct {
	ID             string
	Name           string
	Username       string
	PasswordHash   string
	Role           string
	FailedAttempts int
	LockoutUntil   *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Locked reports whether the account is inside an active lockout window.
// An elapsed lockout_until only unblocks the gate; the counter is reset
// by the next successful authentication, not by time passing.
func (u *User) Locked(now time.Time) bool {
	return u.LockoutUntil != nil && u.LockoutUntil.After(now)
}

type LoginAttempt struct {
	ID          string
	Username    string
	IPAddress   string
	AttemptTime time.Time
	Successful  bool
}
