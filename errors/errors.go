// Package errors provides error types and handling for streaming S3 uploads.
package errors

import (
	"errors"
	"fmt"
)

// Error represents an upload operation error with context about the
// operation that failed. It wraps the underlying error with additional
// context for better debugging.
type Error struct {
	// Op is the operation that failed (e.g., "putContent", "uploadPart")
	Op string

	// Bucket is the S3 bucket name (if applicable)
	Bucket string

	// Key is the S3 object key (if applicable)
	Key string

	// Err is the underlying error from the AWS SDK or other source
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Bucket != "" && e.Key != "" {
		return fmt.Sprintf("s3stream.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("s3stream.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("s3stream.%s object %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("s3stream.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey adds object key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// NewObjectError creates a new Error with bucket and key context.
func NewObjectError(op, bucket, key string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}
}

// Sentinel errors for upload validation and orchestration failures.
// These can be used with errors.Is() for error checking. They are never
// retried automatically; remote errors from the SDK pass through in cause
// position instead.
var (
	// ErrInvalidPartSize indicates that the requested part size is outside
	// the allowed [5MiB, 5GiB] range
	ErrInvalidPartSize = errors.New("s3stream: invalid part size")

	// ErrInvalidObjectSize indicates that the declared object size exceeds
	// the 5TiB maximum
	ErrInvalidObjectSize = errors.New("s3stream: invalid object size")

	// ErrInvalidPartCount indicates that the object size and part size
	// resolve to zero parts or more than 10000 parts
	ErrInvalidPartCount = errors.New("s3stream: invalid part count")

	// ErrMissingPartSize indicates that neither the object size nor a part
	// size is known, so the upload cannot be planned
	ErrMissingPartSize = errors.New("s3stream: part size required when object size is unknown")

	// ErrInsufficientData indicates that the source delivered fewer bytes
	// than the declared object size
	ErrInsufficientData = errors.New("s3stream: source ended before declared object size")

	// ErrTooMuchData indicates that the source delivered more bytes than the
	// declared object size
	ErrTooMuchData = errors.New("s3stream: source exceeded declared object size")

	// ErrTooManyParts indicates that an unbounded stream needed more than
	// 10000 parts at the chosen part size
	ErrTooManyParts = errors.New("s3stream: part count exceeds 10000")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("s3stream: invalid input")

	// ErrInvalidBucketName indicates that the bucket name is invalid
	ErrInvalidBucketName = errors.New("s3stream: invalid bucket name")

	// ErrInvalidObjectKey indicates that the object key is invalid
	ErrInvalidObjectKey = errors.New("s3stream: invalid object key")
)

// IsInsufficientData checks if an error indicates the source under-delivered
// against its declared size.
func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

// IsTooMuchData checks if an error indicates the source over-delivered
// against its declared size.
func IsTooMuchData(err error) bool {
	return errors.Is(err, ErrTooMuchData)
}

// IsInvalidInput checks if an error indicates invalid input.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
