package errors

import (
	"errors"
)

var (
	ErrUsernameAlreadyInUse = errors.New("username already in use")
	ErrUserNotFound         = errors.New("user not found")
	ErrTaskNotFound         = errors.New("task not found")
)
