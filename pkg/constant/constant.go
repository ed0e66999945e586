package constant

import "time"

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Lockout policy. Fixed, not runtime-configurable.
const (
	MaxLoginAttempts = 10
	LockoutDuration  = 15 * time.Minute
)

const (
	DefaultPageSize = 5
	MaxPageSize     = 100
)
