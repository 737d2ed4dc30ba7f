// Package s3types provides shared type definitions for the upload module.
package s3types

import (
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
)

// StorageClass represents the S3 storage class for objects.
type StorageClass string

// Predefined S3 storage classes
const (
	// StorageClassStandard is the default S3 storage class
	StorageClassStandard StorageClass = "STANDARD"

	// StorageClassReducedRedundancy provides reduced redundancy storage
	StorageClassReducedRedundancy StorageClass = "REDUCED_REDUNDANCY"

	// StorageClassStandardIA provides infrequent access storage
	StorageClassStandardIA StorageClass = "STANDARD_IA"

	// StorageClassOneZoneIA provides one zone infrequent access storage
	StorageClassOneZoneIA StorageClass = "ONEZONE_IA"

	// StorageClassIntelligentTiering provides intelligent tiering storage
	StorageClassIntelligentTiering StorageClass = "INTELLIGENT_TIERING"

	// StorageClassGlacier provides Glacier archival storage
	StorageClassGlacier StorageClass = "GLACIER"

	// StorageClassDeepArchive provides Deep Archive storage
	StorageClassDeepArchive StorageClass = "DEEP_ARCHIVE"
)

// SSEType represents the server-side encryption type for objects.
type SSEType string

// Predefined server-side encryption types
const (
	// SSES3 uses S3-managed encryption keys
	SSES3 SSEType = "AES256"

	// SSEKMS uses AWS KMS-managed encryption keys
	SSEKMS SSEType = "aws:kms"
)

// SSEConfig contains server-side encryption configuration.
type SSEConfig struct {
	// Type is the encryption type (S3, KMS, or customer-provided)
	Type SSEType

	// KMSKeyID is the KMS key ID (required for SSE-KMS)
	KMSKeyID string

	// CustomerKey is the customer-provided encryption key (for SSE-C)
	CustomerKey string

	// CustomerKeyMD5 is the MD5 hash of the customer key (for SSE-C)
	CustomerKeyMD5 string
}

// ObjectACL represents the access control list for S3 objects.
type ObjectACL string

// Predefined object ACLs
const (
	// ACLPrivate grants private access (default)
	ACLPrivate ObjectACL = "private"

	// ACLPublicRead grants public read access
	ACLPublicRead ObjectACL = "public-read"

	// ACLAuthenticatedRead grants authenticated users read access
	ACLAuthenticatedRead ObjectACL = "authenticated-read"

	// ACLBucketOwnerFullControl grants bucket owner full control
	ACLBucketOwnerFullControl ObjectACL = "bucket-owner-full-control"
)

// ProgressTracker defines the interface for tracking upload progress.
// Implementations can provide real-time progress updates during uploads.
type ProgressTracker interface {
	// Update is called periodically with transfer progress
	Update(bytesTransferred, totalBytes int64)

	// Complete is called when the transfer completes successfully
	Complete()

	// Error is called when the transfer fails
	Error(err error)
}

// UploadConfig holds configuration for upload operations.
// PartSize is the requested part size in bytes; zero means the part size is
// computed from the object size when that is known.
type UploadConfig struct {
	ContentType     string
	Metadata        map[string]string
	StorageClass    StorageClass
	SSE             *SSEConfig
	ACL             ObjectACL
	ProgressTracker ProgressTracker
	PartSize        uint64
}

// UploadResult contains the result of an upload operation.
type UploadResult struct {
	// Key is the S3 object key that was uploaded
	Key string

	// Size is the total number of bytes uploaded
	Size int64

	// ETag is the S3 entity tag for the uploaded object
	ETag string

	// VersionID is the version ID if versioning is enabled
	VersionID string

	// Parts is the number of parts sent; zero for a simple put
	Parts int32

	// Duration is how long the upload took
	Duration time.Duration
}

// ClientConfig holds configuration for the S3 client.
type ClientConfig struct {
	Region           string
	Endpoint         string
	MaxRetries       int
	Timeout          time.Duration
	PartSize         uint64
	ForcePathStyle   bool
	CustomAWSConfig  *aws.Config
	CustomHTTPClient *http.Client
	Filesystem       fs.Filesystem // Filesystem abstraction for file operations
}

// UploadOptionConfig holds configuration for upload operations via functional options.
type UploadOptionConfig struct {
	ContentType     string
	Metadata        map[string]string
	StorageClass    StorageClass
	SSE             *SSEConfig
	ACL             ObjectACL
	ProgressTracker ProgressTracker
	PartSize        uint64
}

// Option is a functional option for configuring the S3 client.
type (
	Option func(*ClientConfig)
	// UploadOption is a functional option for configuring upload operations.
	UploadOption func(*UploadOptionConfig)
)
