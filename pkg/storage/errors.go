package storage

import "errors"

var (
	// ErrInvalidConfig is returned for incomplete storage configuration.
	ErrInvalidConfig = errors.New("invalid storage config")

	// ErrInvalidKey is returned for empty or malformed object keys.
	ErrInvalidKey = errors.New("invalid object key")

	// ErrUploadFailed is returned when the backend rejects an upload.
	ErrUploadFailed = errors.New("failed to upload object")

	// ErrDeleteFailed is returned when the backend rejects a delete.
	ErrDeleteFailed = errors.New("failed to delete object")
)
