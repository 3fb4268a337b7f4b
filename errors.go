package udimgen

import "errors"

var (
	// ErrInputNotFound indicates the manifest path does not exist or is not a regular file.
	ErrInputNotFound = errors.New("input not found")

	// ErrInputEmpty indicates the manifest exists but holds zero bytes.
	ErrInputEmpty = errors.New("input empty")

	// ErrMalformedLine indicates a manifest line without any token.
	ErrMalformedLine = errors.New("malformed line")

	// ErrPattern indicates an invalid exclude glob.
	ErrPattern = errors.New("invalid pattern")

	// ErrSinkWrite indicates the output sink rejected the generated script.
	ErrSinkWrite = errors.New("sink write error")

	// ErrValidation indicates error-level validation issues were found.
	ErrValidation = errors.New("validation failed")
)
