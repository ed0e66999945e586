package domain

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f UserFilter) ([]User, int, error)

	// ResetLoginState zeroes failed_attempts and clears lockout_until.
	ResetLoginState(ctx context.Context, userID string) error
	// RecordFailedAttempt increments failed_attempts atomically and, when
	// the incremented count reaches threshold, stamps lockout_until at
	// now+window. It returns the post-increment count and the lockout
	// timestamp currently stored, so concurrent failures accumulate
	// instead of overwriting each other.
	RecordFailedAttempt(ctx context.Context, userID string, threshold int, window time.Duration) (int, *time.Time, error)

	RecordLoginAttempt(ctx context.Context, username, ip string, success bool) error
}

type UserFilter struct {
	Role     string
	OrderBy  string
	Order    string
	Page     int
	PageSize int
}

// PasswordVerifier compares a plaintext candidate against a stored hash.
type PasswordVerifier interface {
	Verify(plaintext, hash string) bool
}
