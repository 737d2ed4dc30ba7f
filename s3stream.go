// Package s3stream provides the public upload operations.
package s3stream

import (
	"context"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/forge-cloud/s3stream/content"
	s3errors "github.com/forge-cloud/s3stream/errors"
	"github.com/forge-cloud/s3stream/internal/operations/upload"
	"github.com/forge-cloud/s3stream/internal/validation"
	"github.com/forge-cloud/s3stream/s3types"
)

const (
	// DefaultContentType is the default content type used when content type detection fails
	DefaultContentType = "application/octet-stream"
)

// PutContent uploads a content source to bucket/key. The content is consumed
// exactly once; it may be in-memory bytes, a file, or an open-ended stream.
//
// The upload shape is chosen from the content size and part size: content
// that fits in one part goes out as a single put, everything else through a
// multipart session that is created, filled part by part, and committed. On
// any failure after the session exists, a best-effort abort is issued and
// the original error is returned.
//
// Errors:
//   - ErrInvalidInput: if bucket is empty, key is invalid, or cnt is nil
//   - ErrMissingPartSize: if the content size is unknown and no part size is set
//   - ErrInvalidPartSize, ErrInvalidObjectSize, ErrInvalidPartCount: part planning failures
//   - ErrInsufficientData, ErrTooMuchData: the source contradicted its declared size
//   - ErrTooManyParts: an unbounded stream needed more than 10000 parts
//   - Network errors or AWS SDK errors wrapped in Error type
//
// Example:
//
//	result, err := client.PutContent(ctx, "my-bucket", "backups/db.dump",
//	    content.FromReader(pipe, content.Unknown),
//	    s3stream.WithUploadPartSize(16*1024*1024),
//	)
func (c *Client) PutContent(
	ctx context.Context,
	bucket, key string,
	cnt *content.Content,
	opts ...s3types.UploadOption,
) (*s3types.UploadResult, error) {
	if bucket == "" {
		return nil, s3errors.NewObjectError("putContent", bucket, key, s3errors.ErrInvalidInput).
			WithMessage("bucket name cannot be empty")
	}
	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, s3errors.NewObjectError("putContent", bucket, key, s3errors.ErrInvalidInput).
			WithMessage(err.Error())
	}
	if err := validation.ValidateObjectKey(key); err != nil {
		return nil, s3errors.NewObjectError("putContent", bucket, key, s3errors.ErrInvalidInput).
			WithMessage(err.Error())
	}
	if cnt == nil {
		return nil, s3errors.NewObjectError("putContent", bucket, key, s3errors.ErrInvalidInput).
			WithMessage("content cannot be nil")
	}

	config := c.uploadConfig(key, opts)
	if err := validation.ValidateContentType(config.ContentType); err != nil {
		return nil, s3errors.NewObjectError("putContent", bucket, key, err)
	}
	if err := validation.ValidateMetadata(config.Metadata); err != nil {
		return nil, s3errors.NewObjectError("putContent", bucket, key, err)
	}
	if err := validation.ValidateACL(config.ACL); err != nil {
		return nil, s3errors.NewObjectError("putContent", bucket, key, err)
	}
	config.Metadata = validation.SanitizeMetadata(config.Metadata)
	startTime := time.Now()

	reader, err := cnt.Stream()
	if err != nil {
		return nil, s3errors.NewObjectError("putContent", bucket, key, err)
	}
	defer reader.Close()

	uploader := upload.New(c.s3Client)
	result, err := uploader.Upload(ctx, bucket, key, reader, config, startTime)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// PutBytes uploads in-memory bytes to bucket/key.
// This is a convenience method for data that already fits in memory; the
// slice is retained without copying until the call returns.
//
// Example:
//
//	data := []byte(`{"config": "value"}`)
//	_, err := client.PutBytes(ctx, "my-bucket", "config.json", data,
//	    s3stream.WithContentType("application/json"),
//	)
func (c *Client) PutBytes(
	ctx context.Context,
	bucket, key string,
	data []byte,
	opts ...s3types.UploadOption,
) (*s3types.UploadResult, error) {
	return c.PutContent(ctx, bucket, key, content.FromBytes(data), opts...)
}

// PutFile uploads a file from the local filesystem to bucket/key. The file
// is read lazily one part at a time, so arbitrarily large files upload
// without being held in memory; its size at open time is the declared object
// size.
//
// Example:
//
//	result, err := client.PutFile(ctx, "my-bucket", "docs/report.pdf", "/path/to/report.pdf",
//	    s3stream.WithMetadata(map[string]string{"Author": "Jane Doe"}),
//	)
func (c *Client) PutFile(
	ctx context.Context,
	bucket, key, path string,
	opts ...s3types.UploadOption,
) (*s3types.UploadResult, error) {
	if path == "" {
		return nil, s3errors.NewObjectError("putFile", bucket, key, s3errors.ErrInvalidInput).
			WithMessage("file path cannot be empty")
	}

	filesystem := c.getFilesystem()
	info, err := filesystem.Stat(path)
	if err != nil {
		return nil, s3errors.NewObjectError("putFile", bucket, key, err)
	}
	if info.IsDir() {
		return nil, s3errors.NewObjectError("putFile", bucket, key, s3errors.ErrInvalidInput).
			WithMessage("file path points to a directory, not a file")
	}

	// Detect from the file itself rather than the key when no explicit
	// content type was given.
	opts = append([]s3types.UploadOption{WithContentType(c.detectContentType(path))}, opts...)

	return c.PutContent(ctx, bucket, key, content.FromFile(filesystem, path), opts...)
}

// uploadConfig resolves upload options against client defaults.
func (c *Client) uploadConfig(key string, opts []s3types.UploadOption) *s3types.UploadConfig {
	optCfg := &s3types.UploadOptionConfig{
		ContentType:  DefaultContentType,
		StorageClass: s3types.StorageClassStandard,
		Metadata:     make(map[string]string),
		PartSize:     c.clientCfg.PartSize,
	}
	for _, opt := range opts {
		opt(optCfg)
	}

	if optCfg.ContentType == DefaultContentType {
		optCfg.ContentType = c.detectContentTypeFromExtension(key)
	}

	return &s3types.UploadConfig{
		ContentType:     optCfg.ContentType,
		Metadata:        optCfg.Metadata,
		StorageClass:    optCfg.StorageClass,
		SSE:             optCfg.SSE,
		ACL:             optCfg.ACL,
		ProgressTracker: optCfg.ProgressTracker,
		PartSize:        optCfg.PartSize,
	}
}

// detectContentType detects the content type of a local file, preferring
// content sniffing over the extension.
func (c *Client) detectContentType(path string) string {
	filesystem := c.getFilesystem()

	info, err := filesystem.Stat(path)
	if err != nil || info.IsDir() {
		return c.detectContentTypeFromExtension(path)
	}

	file, err := filesystem.Open(path)
	if err != nil {
		return c.detectContentTypeFromExtension(path)
	}
	defer file.Close()

	// Read first 512 bytes for content detection
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	if n > 0 {
		if mt := mimetype.Detect(buf[:n]); mt != nil {
			return mt.String()
		}
	}

	return c.detectContentTypeFromExtension(path)
}

// detectContentTypeFromExtension falls back to extension-based detection for
// S3 keys or unreadable files.
func (c *Client) detectContentTypeFromExtension(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt
		}
	}
	return DefaultContentType
}
