package upload

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awstypes "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/forge-cloud/s3stream/s3types"
)

// applyWriteOptions copies storage class, metadata, ACL, and SSE settings
// onto a simple put request.
func applyWriteOptions(input *s3.PutObjectInput, config *s3types.UploadConfig) {
	if config.StorageClass != "" {
		input.StorageClass = awstypes.StorageClass(config.StorageClass)
	}
	if len(config.Metadata) > 0 {
		input.Metadata = config.Metadata
	}
	if config.ACL != "" {
		input.ACL = awstypes.ObjectCannedACL(config.ACL)
	}
	if config.SSE == nil {
		return
	}
	switch config.SSE.Type {
	case s3types.SSES3:
		input.ServerSideEncryption = awstypes.ServerSideEncryptionAes256
	case s3types.SSEKMS:
		input.ServerSideEncryption = awstypes.ServerSideEncryptionAwsKms
		if config.SSE.KMSKeyID != "" {
			input.SSEKMSKeyId = aws.String(config.SSE.KMSKeyID)
		}
	default: // SSEC (customer-provided encryption)
		if config.SSE.CustomerKey != "" {
			input.ServerSideEncryption = awstypes.ServerSideEncryptionAes256
			input.SSECustomerAlgorithm = aws.String(string(config.SSE.Type))
			input.SSECustomerKey = aws.String(config.SSE.CustomerKey)
			input.SSECustomerKeyMD5 = aws.String(config.SSE.CustomerKeyMD5)
		}
	}
}

// applyCreateOptions copies the same settings onto a multipart session
// create request, so parts inherit them server-side.
func applyCreateOptions(input *s3.CreateMultipartUploadInput, config *s3types.UploadConfig) {
	if config.StorageClass != "" {
		input.StorageClass = awstypes.StorageClass(config.StorageClass)
	}
	if len(config.Metadata) > 0 {
		input.Metadata = config.Metadata
	}
	if config.ACL != "" {
		input.ACL = awstypes.ObjectCannedACL(config.ACL)
	}
	if config.SSE == nil {
		return
	}
	switch config.SSE.Type {
	case s3types.SSES3:
		input.ServerSideEncryption = awstypes.ServerSideEncryptionAes256
	case s3types.SSEKMS:
		input.ServerSideEncryption = awstypes.ServerSideEncryptionAwsKms
		if config.SSE.KMSKeyID != "" {
			input.SSEKMSKeyId = aws.String(config.SSE.KMSKeyID)
		}
	default:
		if config.SSE.CustomerKey != "" {
			input.ServerSideEncryption = awstypes.ServerSideEncryptionAes256
			input.SSECustomerAlgorithm = aws.String(string(config.SSE.Type))
			input.SSECustomerKey = aws.String(config.SSE.CustomerKey)
			input.SSECustomerKeyMD5 = aws.String(config.SSE.CustomerKeyMD5)
		}
	}
}
