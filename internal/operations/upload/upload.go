// Package upload drives streaming S3 object uploads. It decides between a
// single-request put and a multipart session from the planned part size,
// reads the content one part at a time, and guarantees a best-effort abort
// of the session on any failure after it has been created.
package upload

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awstypes "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/forge-cloud/s3stream/content"
	"github.com/forge-cloud/s3stream/errors"
	"github.com/forge-cloud/s3stream/internal/partplan"
	"github.com/forge-cloud/s3stream/internal/s3api"
	"github.com/forge-cloud/s3stream/s3types"
)

// Uploader orchestrates a single upload end to end. Parts are read and sent
// sequentially; layering concurrent part uploads on top is a caller concern.
type Uploader struct {
	s3Client s3api.S3API
}

// New creates a new Uploader instance.
func New(s3Client s3api.S3API) *Uploader {
	return &Uploader{
		s3Client: s3Client,
	}
}

// Upload streams the content behind cr to bucket/key. The requested part
// size comes from config; when it is zero the part size is planned from the
// content size. The call is atomic from the caller's view: one success or
// one error, with a best-effort AbortMultipartUpload issued when a session
// was created and anything after that failed.
func (u *Uploader) Upload(
	ctx context.Context,
	bucket, key string,
	cr *content.ChunkReader,
	config *s3types.UploadConfig,
	startTime time.Time,
) (*s3types.UploadResult, error) {
	result, err := u.upload(ctx, bucket, key, cr, config, startTime)
	if err != nil {
		if config.ProgressTracker != nil {
			config.ProgressTracker.Error(err)
		}
		return nil, err
	}
	if config.ProgressTracker != nil {
		config.ProgressTracker.Update(result.Size, result.Size)
		config.ProgressTracker.Complete()
	}
	return result, nil
}

func (u *Uploader) upload(
	ctx context.Context,
	bucket, key string,
	cr *content.ChunkReader,
	config *s3types.UploadConfig,
	startTime time.Time,
) (*s3types.UploadResult, error) {
	objectSize := cr.Size()

	requested := content.Unknown
	if config.PartSize > 0 {
		requested = content.Known(config.PartSize)
	}
	plan, err := partplan.Calc(objectSize, requested)
	if err != nil {
		return nil, err
	}

	// Read the first part before touching the remote side: it decides the
	// upload shape.
	first, err := cr.ReadUpto(int64(plan.PartSize))
	if err != nil {
		return nil, errors.NewObjectError("upload", bucket, key, err)
	}
	firstLen := uint64(first.Len())

	// A short first read on an unbounded stream means the whole content fits
	// in one request, as does a planned part count of one.
	if (!objectSize.IsKnown() && firstLen < plan.PartSize) || (plan.CountKnown && plan.Count == 1) {
		return u.putObject(ctx, bucket, key, first, config, startTime)
	}

	if objectSize.IsKnown() && firstLen < plan.PartSize {
		// More than one part was planned from the declared size, but the
		// source could not even fill the first one.
		return nil, errors.NewObjectError("upload", bucket, key, errors.ErrInsufficientData).
			WithMessage(fmt.Sprintf("read %d of %d declared bytes", firstLen, objectSize.Value()))
	}

	uploadID, err := u.createMultipartUpload(ctx, bucket, key, config)
	if err != nil {
		return nil, err
	}

	result, err := u.uploadParts(ctx, bucket, key, cr, first, plan, objectSize, uploadID, config, startTime)
	if err != nil {
		// Best-effort cleanup; the original error is what the caller sees.
		u.abortMultipartUpload(ctx, bucket, key, uploadID)
		return nil, err
	}
	return result, nil
}

// putObject uploads the whole content as a single request.
func (u *Uploader) putObject(
	ctx context.Context,
	bucket, key string,
	body *content.SegmentedBytes,
	config *s3types.UploadConfig,
	startTime time.Time,
) (*s3types.UploadResult, error) {
	size := int64(body.Len())

	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          body.Reader(),
		ContentType:   aws.String(config.ContentType),
		ContentLength: aws.Int64(size),
	}
	applyWriteOptions(input, config)

	output, err := u.s3Client.PutObject(ctx, input)
	if err != nil {
		return nil, errors.NewObjectError("putObject", bucket, key, err)
	}

	return &s3types.UploadResult{
		Key:       key,
		Size:      size,
		ETag:      aws.ToString(output.ETag),
		VersionID: aws.ToString(output.VersionId),
		Duration:  time.Since(startTime),
	}, nil
}

// createMultipartUpload starts the remote session and returns its upload ID.
func (u *Uploader) createMultipartUpload(
	ctx context.Context,
	bucket, key string,
	config *s3types.UploadConfig,
) (string, error) {
	input := &s3.CreateMultipartUploadInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		ContentType: aws.String(config.ContentType),
	}
	applyCreateOptions(input, config)

	output, err := u.s3Client.CreateMultipartUpload(ctx, input)
	if err != nil {
		return "", errors.NewObjectError("createMultipartUpload", bucket, key, err)
	}
	return aws.ToString(output.UploadId), nil
}

// uploadParts runs the sequential part loop and commits the session. The
// first chunk has already been read by the caller and is sent as part 1.
func (u *Uploader) uploadParts(
	ctx context.Context,
	bucket, key string,
	cr *content.ChunkReader,
	first *content.SegmentedBytes,
	plan partplan.Plan,
	objectSize content.Size,
	uploadID string,
	config *s3types.UploadConfig,
	startTime time.Time,
) (*s3types.UploadResult, error) {
	capacity := 8
	if plan.CountKnown {
		capacity = int(plan.Count)
	}
	parts := make([]awstypes.CompletedPart, 0, capacity)

	var partNumber int32
	var total uint64
	chunk := first
	done := false

	for !done {
		if chunk == nil {
			var err error
			chunk, err = cr.ReadUpto(int64(plan.PartSize))
			if err != nil {
				return nil, errors.NewObjectError("uploadParts", bucket, key, err)
			}
		}
		partNumber++
		chunkLen := uint64(chunk.Len())

		if chunkLen == 0 && partNumber > 1 {
			// At least one part went out and the stream is drained.
			break
		}

		if !plan.CountKnown && uint32(partNumber) > partplan.MaxPartCount {
			return nil, errors.NewObjectError("uploadParts", bucket, key, errors.ErrTooManyParts).
				WithMessage(fmt.Sprintf("part size %d is too small for this stream", plan.PartSize))
		}

		if objectSize.IsKnown() && total+chunkLen > objectSize.Value() {
			return nil, errors.NewObjectError("uploadParts", bucket, key, errors.ErrTooMuchData).
				WithMessage(fmt.Sprintf("source exceeded declared size %d", objectSize.Value()))
		}

		etag, err := u.uploadPart(ctx, bucket, key, uploadID, partNumber, chunk, config)
		if err != nil {
			return nil, err
		}
		parts = append(parts, awstypes.CompletedPart{
			ETag:       aws.String(etag),
			PartNumber: aws.Int32(partNumber),
		})
		total += chunkLen

		if chunkLen < plan.PartSize {
			// Short part signals the end of the source.
			done = true
		}
		chunk = nil
	}

	if objectSize.IsKnown() && total != objectSize.Value() {
		return nil, errors.NewObjectError("uploadParts", bucket, key, errors.ErrInsufficientData).
			WithMessage(fmt.Sprintf("read %d of %d declared bytes", total, objectSize.Value()))
	}

	return u.completeMultipartUpload(ctx, bucket, key, uploadID, parts, int64(total), startTime)
}

// uploadPart sends one numbered part and returns its ETag.
func (u *Uploader) uploadPart(
	ctx context.Context,
	bucket, key, uploadID string,
	partNumber int32,
	body *content.SegmentedBytes,
	config *s3types.UploadConfig,
) (string, error) {
	input := &s3.UploadPartInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		UploadId:      aws.String(uploadID),
		PartNumber:    aws.Int32(partNumber),
		Body:          body.Reader(),
		ContentLength: aws.Int64(int64(body.Len())),
	}

	// SSE-C keys must accompany every part request.
	if config.SSE != nil && config.SSE.CustomerKey != "" {
		input.SSECustomerAlgorithm = aws.String(string(config.SSE.Type))
		input.SSECustomerKey = aws.String(config.SSE.CustomerKey)
		input.SSECustomerKeyMD5 = aws.String(config.SSE.CustomerKeyMD5)
	}

	output, err := u.s3Client.UploadPart(ctx, input)
	if err != nil {
		return "", errors.NewObjectError("uploadPart", bucket, key, err)
	}
	return aws.ToString(output.ETag), nil
}

// completeMultipartUpload commits the session with the ordered part list.
func (u *Uploader) completeMultipartUpload(
	ctx context.Context,
	bucket, key, uploadID string,
	parts []awstypes.CompletedPart,
	total int64,
	startTime time.Time,
) (*s3types.UploadResult, error) {
	input := &s3.CompleteMultipartUploadInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(key),
		UploadId: aws.String(uploadID),
		MultipartUpload: &awstypes.CompletedMultipartUpload{
			Parts: parts,
		},
	}

	output, err := u.s3Client.CompleteMultipartUpload(ctx, input)
	if err != nil {
		return nil, errors.NewObjectError("completeMultipartUpload", bucket, key, err)
	}

	return &s3types.UploadResult{
		Key:       key,
		Size:      total,
		ETag:      aws.ToString(output.ETag),
		VersionID: aws.ToString(output.VersionId),
		Parts:     int32(len(parts)),
		Duration:  time.Since(startTime),
	}, nil
}

// abortMultipartUpload discards a failed session. Failures here are
// swallowed: the orchestration error is the one that matters, and a session
// that survives a failed abort is reclaimed by the backend's own stale
// upload expiry.
func (u *Uploader) abortMultipartUpload(ctx context.Context, bucket, key, uploadID string) {
	input := &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(key),
		UploadId: aws.String(uploadID),
	}
	_, _ = u.s3Client.AbortMultipartUpload(ctx, input)
}
