package service

import "errors"

// Error taxonomy shared by the user and task services. The HTTP layer maps
// these onto status codes; anything else surfaces as a generic 500.
var (
	// ErrInvalidInput indicates malformed or missing request fields.
	ErrInvalidInput = errors.New("invalid or missing input data")
	// ErrInvalidEmail indicates the email failed format validation.
	ErrInvalidEmail = errors.New("the provided email is not a real email address")
	// ErrPasswordTooShort indicates the password is below the minimum length.
	ErrPasswordTooShort = errors.New("the provided password is too short")
	// ErrAlreadyExists is returned when registering an already taken username.
	ErrAlreadyExists = errors.New("user already exists")
	// ErrNotFound indicates the referenced user or task does not exist.
	ErrNotFound = errors.New("requested record does not exist")
	// ErrNotAuthorized indicates the caller failed the credential check.
	ErrNotAuthorized = errors.New("user is not authorized for this operation")
)
