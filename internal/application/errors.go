package application

import "errors"

// Failure taxonomy of the core. Operations wrap these sentinels with
// fmt.Errorf("%w: ...") for context; handlers classify with errors.Is
// and map each class to an HTTP status once, at the boundary.
var (
	// ErrValidation marks missing or malformed caller input.
	ErrValidation = errors.New("invalid input")
	// ErrNotFound marks an absent referenced entity.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks a caller that is not the owner of the resource.
	ErrForbidden = errors.New("caller is not the owner")
	// ErrStorage marks an object-store failure during an upload.
	ErrStorage = errors.New("object storage failure")
	// ErrInvalidCredentials marks a failed login or token check.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAlreadyDecided marks a decide call on a terminal request.
	ErrAlreadyDecided = errors.New("request already decided")
)
