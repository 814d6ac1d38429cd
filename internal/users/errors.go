package users

import "errors"

var (
	// ErrDuplicateUser is returned by Register when the email is already taken.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrStorageUnavailable wraps any unexpected credential store failure.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrUnknownUser is returned by Profile when the id has no record.
	ErrUnknownUser = errors.New("unknown user")

	// ErrInvalidInput matches every *ValidationError.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError carries a client-facing message for rejected input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
