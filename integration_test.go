//go:build integration
// +build integration

package s3stream_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	s3stream "github.com/forge-cloud/s3stream"
	"github.com/forge-cloud/s3stream/content"
	"github.com/forge-cloud/s3stream/internal/testutil"
)

const mib = 1024 * 1024

// TestIntegrationUploads drives real uploads against LocalStack and verifies
// the stored objects byte for byte.
func TestIntegrationUploads(t *testing.T) {
	ctx := context.Background()
	s3Client := testutil.SetupLocalStackTest(t)

	bucketName := testutil.GenerateTestBucketName("s3stream")
	require.NoError(t, testutil.CreateTestBucket(ctx, s3Client, bucketName))
	t.Cleanup(func() {
		if err := testutil.DeleteTestBucket(context.Background(), s3Client, bucketName); err != nil {
			t.Logf("cleaning up bucket %s: %v", bucketName, err)
		}
	})

	client := s3stream.NewWithClient(s3Client)

	fetch := func(t *testing.T, key string) []byte {
		t.Helper()
		out, err := s3Client.GetObject(ctx, &awss3.GetObjectInput{
			Bucket: aws.String(bucketName),
			Key:    aws.String(key),
		})
		require.NoError(t, err)
		defer out.Body.Close()
		data, err := io.ReadAll(out.Body)
		require.NoError(t, err)
		return data
	}

	t.Run("simple put round-trip", func(t *testing.T) {
		key := testutil.GenerateTestKey("simple")
		data := testutil.GenerateRandomData(64 * 1024)

		result, err := client.PutBytes(ctx, bucketName, key, data)
		require.NoError(t, err)
		assert.Equal(t, int64(len(data)), result.Size)
		assert.NotEmpty(t, result.ETag)

		assert.Equal(t, data, fetch(t, key))
	})

	t.Run("multipart round-trip", func(t *testing.T) {
		key := testutil.GenerateTestKey("multipart")
		data := testutil.GenerateRandomData(12 * mib)

		result, err := client.PutContent(ctx, bucketName, key,
			content.FromReader(bytes.NewReader(data), content.Known(12*mib)),
			s3stream.WithUploadPartSize(5*mib),
		)
		require.NoError(t, err)
		assert.Equal(t, int32(3), result.Parts)
		assert.Equal(t, int64(12*mib), result.Size)

		assert.Equal(t, data, fetch(t, key))
	})

	t.Run("unknown size stream round-trip", func(t *testing.T) {
		key := testutil.GenerateTestKey("stream")
		data := testutil.GenerateRandomData(11 * mib)

		result, err := client.PutContent(ctx, bucketName, key,
			content.FromReader(bytes.NewReader(data), content.Unknown),
			s3stream.WithUploadPartSize(5*mib),
		)
		require.NoError(t, err)
		assert.Equal(t, int64(11*mib), result.Size)

		assert.Equal(t, data, fetch(t, key))
	})

	t.Run("file round-trip", func(t *testing.T) {
		key := testutil.GenerateTestKey("file")
		data := testutil.GenerateRandomData(256 * 1024)

		memfs := billy.NewInMemoryFS()
		require.NoError(t, memfs.WriteFile("/upload/data.bin", data, 0o644))
		client.SetFilesystem(memfs)

		result, err := client.PutFile(ctx, bucketName, key, "/upload/data.bin")
		require.NoError(t, err)
		assert.Equal(t, int64(len(data)), result.Size)

		assert.Equal(t, data, fetch(t, key))
	})

	t.Run("empty object", func(t *testing.T) {
		key := testutil.GenerateTestKey("empty")

		result, err := client.PutBytes(ctx, bucketName, key, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.Size)

		assert.Empty(t, fetch(t, key))
	})
}
