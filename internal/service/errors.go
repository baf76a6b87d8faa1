package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateMatch     = errors.New("party is already matched to this deal")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("reset token is invalid or expired")
	ErrUnavailable        = errors.New("service unavailable")
)

// NotFoundError names the missing resource and matches ErrNotFound.
type NotFoundError struct{ Resource string }

func (e *NotFoundError) Error() string        { return e.Resource + " not found" }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// notFound maps gorm.ErrRecordNotFound to a NotFoundError for resource and
// passes any other error through.
func notFound(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Resource: resource}
	}
	return err
}
