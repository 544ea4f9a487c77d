package admin

import "errors"

var (
	// ErrInvalidParams is returned for malformed administrative input.
	ErrInvalidParams = errors.New("invalid admin parameters")

	// ErrStorageDisabled is returned when logo uploads are attempted
	// without configured object storage.
	ErrStorageDisabled = errors.New("object storage is not configured")
)
