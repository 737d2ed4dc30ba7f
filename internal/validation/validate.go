// Package validation checks upload inputs before any request is built:
// bucket names, object keys, user metadata, content types, and canned ACLs.
// Everything here is pure string inspection; nothing talks to AWS.
package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/forge-cloud/s3stream/errors"
	"github.com/forge-cloud/s3stream/s3types"
)

const (
	maxObjectKeyLen   = 1024
	maxMetadataKeyLen = 128
	maxMetadataValLen = 2048
)

// bucketNameRe enforces the character set and the edges in one shot:
// lowercase letters, digits, dots, and hyphens, starting with a letter and
// ending with a letter or digit.
var bucketNameRe = regexp.MustCompile(`^[a-z][a-z0-9.-]*[a-z0-9]$`)

var contentTypeRe = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-+]*\/[a-zA-Z0-9][a-zA-Z0-9\-+]*(\s*;.*)?$`)

// metadata keys may not shadow headers AWS reserves for itself.
var reservedMetadataPrefixes = []string{"aws:", "x-amz-", "x-amz:"}

// ValidateBucketName checks DNS compliance per the S3 bucket naming rules.
// Returns ErrInvalidBucketName on the first rule the name breaks.
func ValidateBucketName(bucket string) error {
	switch {
	case bucket == "":
		return bucketErr(bucket, "bucket name cannot be empty")
	case len(bucket) < 3 || len(bucket) > 63:
		return bucketErr(bucket, "bucket name must be between 3 and 63 characters long")
	case !bucketNameRe.MatchString(bucket):
		return bucketErr(bucket, "bucket name must start with a lowercase letter and contain only lowercase letters, numbers, dots, and hyphens")
	case strings.Contains(bucket, "..") || strings.Contains(bucket, "--") ||
		strings.Contains(bucket, ".-") || strings.Contains(bucket, "-."):
		return bucketErr(bucket, "bucket name cannot contain adjacent dots or hyphens")
	case looksLikeIPAddress(bucket):
		return bucketErr(bucket, "bucket name cannot be formatted as an IP address")
	case bucket == "localhost":
		return bucketErr(bucket, "bucket name cannot be a reserved word")
	}
	return nil
}

// ValidateObjectKey rejects empty, oversized, and hostile object keys.
// Keys may contain any printable UTF-8 but never a path traversal sequence.
func ValidateObjectKey(key string) error {
	switch {
	case key == "":
		return keyErr(key, "object key cannot be empty")
	case len(key) > maxObjectKeyLen:
		return keyErr(key, "object key cannot exceed 1024 characters")
	case hasPathTraversal(key):
		return keyErr(key, "object key cannot contain path traversal sequences")
	case strings.ContainsFunc(key, unicode.IsControl):
		return keyErr(key, "object key cannot contain control characters")
	}
	return nil
}

// ValidateMetadata checks user metadata against the S3 limits: key length,
// reserved prefixes, and the printable-ASCII key character set.
func ValidateMetadata(metadata map[string]string) error {
	for key, value := range metadata {
		if err := validateMetadataKey(key); err != nil {
			return err
		}
		if err := validateMetadataValue(value); err != nil {
			return err
		}
	}
	return nil
}

// SanitizeMetadata strips non-printable runes from metadata before it is put
// on the wire. Values keep newlines and tabs; keys keep nothing unprintable.
func SanitizeMetadata(metadata map[string]string) map[string]string {
	if metadata == nil {
		return nil
	}
	sanitized := make(map[string]string, len(metadata))
	for key, value := range metadata {
		cleanKey := strings.Map(func(r rune) rune {
			if unicode.IsPrint(r) {
				return r
			}
			return -1
		}, key)
		cleanValue := strings.Map(func(r rune) rune {
			if unicode.IsControl(r) && r != '\n' && r != '\t' {
				return -1
			}
			return r
		}, value)
		sanitized[cleanKey] = cleanValue
	}
	return sanitized
}

// ValidateContentType accepts the empty string (caller falls back to a
// default) and otherwise requires a well-formed MIME type that is not on the
// blocked list.
func ValidateContentType(contentType string) error {
	if contentType == "" {
		return nil
	}
	if !contentTypeRe.MatchString(contentType) {
		return inputErr("validateContentType", "content type must be a valid MIME type")
	}

	blocked := []string{
		"application/x-shockwave-flash",
		"application/java-archive",
		"application/x-java-archive",
	}
	base := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	for _, b := range blocked {
		if base == b {
			return inputErr("validateContentType", "content type is not allowed for security reasons")
		}
	}
	return nil
}

// ValidateACL accepts the empty value (server default, private) or one of
// the canned ACLs S3 recognizes for objects.
func ValidateACL(acl s3types.ObjectACL) error {
	switch acl {
	case "",
		s3types.ACLPrivate,
		s3types.ACLPublicRead,
		s3types.ACLAuthenticatedRead,
		s3types.ACLBucketOwnerFullControl,
		"public-read-write",
		"aws-exec-read",
		"bucket-owner-read":
		return nil
	}
	return inputErr("validateACL",
		"ACL must be one of: private, public-read, public-read-write, authenticated-read, aws-exec-read, bucket-owner-read, bucket-owner-full-control")
}

func bucketErr(bucket, msg string) error {
	return errors.NewError("validateBucketName", errors.ErrInvalidBucketName).
		WithBucket(bucket).
		WithMessage(msg)
}

func keyErr(key, msg string) error {
	return errors.NewError("validateObjectKey", errors.ErrInvalidObjectKey).
		WithKey(key).
		WithMessage(msg)
}

func inputErr(op, msg string) error {
	return errors.NewError(op, errors.ErrInvalidInput).WithMessage(msg)
}

// looksLikeIPAddress reports whether the name is four dot-separated decimal
// octets, which S3 forbids as a bucket name.
func looksLikeIPAddress(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, part := range parts {
		if part == "" || len(part) > 3 {
			return false
		}
		n := 0
		for _, c := range part {
			if c < '0' || c > '9' {
				return false
			}
			n = n*10 + int(c-'0')
		}
		if n > 255 {
			return false
		}
	}
	return true
}

// hasPathTraversal catches "..", absolute paths, and Windows drive prefixes
// after normalization, so keys cannot escape a prefix when mirrored to disk.
func hasPathTraversal(key string) bool {
	if strings.Contains(key, "..") {
		return true
	}
	cleaned := filepath.Clean(key)
	if strings.HasPrefix(cleaned, "/") {
		return true
	}
	if len(cleaned) >= 3 && cleaned[1] == ':' && (cleaned[2] == '\\' || cleaned[2] == '/') {
		return true
	}
	return false
}

func validateMetadataKey(key string) error {
	if key == "" {
		return inputErr("validateMetadata", "metadata key cannot be empty")
	}
	if len(key) > maxMetadataKeyLen {
		return inputErr("validateMetadata", "metadata key cannot exceed 128 characters")
	}
	lower := strings.ToLower(key)
	for _, prefix := range reservedMetadataPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return inputErr("validateMetadata",
				fmt.Sprintf("metadata key cannot start with reserved prefix: %s", prefix))
		}
	}
	for _, c := range key {
		if c < 32 || c > 126 {
			return inputErr("validateMetadata", "metadata key can only contain printable ASCII characters")
		}
	}
	return nil
}

func validateMetadataValue(value string) error {
	if len(value) > maxMetadataValLen {
		return inputErr("validateMetadata", "metadata value cannot exceed 2048 characters")
	}
	for _, c := range value {
		if !unicode.IsPrint(c) && c != '\n' && c != '\t' {
			return inputErr("validateMetadata", "metadata value can only contain printable characters")
		}
	}
	return nil
}
