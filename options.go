// Package s3stream provides functional options for configuring client behavior.
// These options follow the functional options pattern for clean, composable configuration.
package s3stream

import (
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/forge-cloud/s3stream/s3types"
)

// WithRegion sets the AWS region for S3 operations.
// If not specified, uses the default AWS region from the credential chain.
func WithRegion(region string) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Region = region
	}
}

// WithEndpoint sets a custom S3 endpoint URL.
// This is useful for S3-compatible services or local testing with LocalStack.
func WithEndpoint(endpoint string) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Endpoint = endpoint
	}
}

// WithMaxRetries sets the maximum number of retry attempts for failed operations.
// Default is 3 retries. Retries happen inside the SDK transport; the upload
// engine itself never retries.
func WithMaxRetries(maxRetries int) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.MaxRetries = maxRetries
	}
}

// WithTimeout sets the timeout for individual S3 requests.
// Default is no timeout (0). Values should be positive durations.
func WithTimeout(timeout time.Duration) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Timeout = timeout
	}
}

// WithPartSize sets the default part size for multipart uploads.
// Must be between 5MiB and 5GiB. When unset, the part size is planned from
// the content size where possible.
func WithPartSize(partSize uint64) s3types.Option {
	return func(c *s3types.ClientConfig) {
		if partSize > 0 {
			c.PartSize = partSize
		}
	}
}

// WithForcePathStyle forces the use of path-style URLs instead of virtual-hosted style.
// This is required for S3-compatible services that don't support virtual hosting.
// Default is false (uses virtual-hosted style).
func WithForcePathStyle(forcePathStyle bool) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.ForcePathStyle = forcePathStyle
	}
}

// WithAWSConfig allows providing a custom AWS configuration.
// This overrides the default configuration loading behavior.
// Use this when you need fine-grained control over AWS SDK configuration.
func WithAWSConfig(config *aws.Config) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.CustomAWSConfig = config
	}
}

// WithCustomHTTPClient sets a custom HTTP client for S3 requests.
// This takes precedence over WithTimeout.
func WithCustomHTTPClient(client *http.Client) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.CustomHTTPClient = client
	}
}

// WithFilesystem sets the filesystem abstraction used for file-backed content.
// Defaults to the OS filesystem.
func WithFilesystem(filesystem fs.Filesystem) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Filesystem = filesystem
	}
}

// WithContentType sets the Content-Type for the uploaded object.
// When unset, the content type is detected from the content or key extension.
func WithContentType(contentType string) s3types.UploadOption {
	return func(c *s3types.UploadOptionConfig) {
		c.ContentType = contentType
	}
}

// WithMetadata sets user-defined metadata on the uploaded object.
func WithMetadata(metadata map[string]string) s3types.UploadOption {
	return func(c *s3types.UploadOptionConfig) {
		if c.Metadata == nil {
			c.Metadata = make(map[string]string, len(metadata))
		}
		for k, v := range metadata {
			c.Metadata[k] = v
		}
	}
}

// WithStorageClass sets the storage class for the uploaded object.
func WithStorageClass(storageClass s3types.StorageClass) s3types.UploadOption {
	return func(c *s3types.UploadOptionConfig) {
		c.StorageClass = storageClass
	}
}

// WithServerSideEncryption configures server-side encryption for the upload.
func WithServerSideEncryption(sse *s3types.SSEConfig) s3types.UploadOption {
	return func(c *s3types.UploadOptionConfig) {
		c.SSE = sse
	}
}

// WithACL sets a canned ACL on the uploaded object.
func WithACL(acl s3types.ObjectACL) s3types.UploadOption {
	return func(c *s3types.UploadOptionConfig) {
		c.ACL = acl
	}
}

// WithProgress attaches a progress tracker to the upload.
func WithProgress(tracker s3types.ProgressTracker) s3types.UploadOption {
	return func(c *s3types.UploadOptionConfig) {
		c.ProgressTracker = tracker
	}
}

// WithUploadPartSize sets the part size for this upload only, overriding the
// client default. Must be between 5MiB and 5GiB.
func WithUploadPartSize(partSize uint64) s3types.UploadOption {
	return func(c *s3types.UploadOptionConfig) {
		if partSize > 0 {
			c.PartSize = partSize
		}
	}
}
