// Package s3stream provides tests for client initialization and configuration.
package s3stream

import (
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forge-cloud/s3stream/internal/testutil"
	"github.com/forge-cloud/s3stream/s3types"
)

func TestNewWithClient(t *testing.T) {
	t.Run("wraps the provided backend", func(t *testing.T) {
		mock := &testutil.MockS3Client{}
		client := NewWithClient(mock)

		require.NotNil(t, client)
		assert.Equal(t, mock, client.s3Client)
	})

	t.Run("applies client options", func(t *testing.T) {
		client := NewWithClient(&testutil.MockS3Client{},
			WithRegion("eu-west-1"),
			WithPartSize(8*1024*1024),
			WithForcePathStyle(true),
		)

		assert.Equal(t, "eu-west-1", client.clientCfg.Region)
		assert.Equal(t, uint64(8*1024*1024), client.clientCfg.PartSize)
		assert.True(t, client.clientCfg.ForcePathStyle)
	})

	t.Run("defaults to the OS filesystem", func(t *testing.T) {
		client := NewWithClient(&testutil.MockS3Client{})
		assert.NotNil(t, client.getFilesystem())
	})

	t.Run("uses the configured filesystem", func(t *testing.T) {
		memfs := billy.NewInMemoryFS()
		client := NewWithClient(&testutil.MockS3Client{}, WithFilesystem(memfs))

		assert.Equal(t, memfs, client.getFilesystem())
	})
}

func TestNewWithCustomAWSConfig(t *testing.T) {
	cfg := aws.Config{Region: "ap-southeast-2"}
	client, err := New(WithAWSConfig(&cfg))

	require.NoError(t, err)
	assert.Equal(t, "ap-southeast-2", client.config.Region)
}

func TestNewRegionPrecedence(t *testing.T) {
	t.Run("explicit region wins", func(t *testing.T) {
		client, err := New(
			WithAWSConfig(&aws.Config{Region: "us-west-1"}),
			WithRegion("eu-central-1"),
		)
		require.NoError(t, err)
		assert.Equal(t, "eu-central-1", client.config.Region)
	})

	t.Run("falls back to default region", func(t *testing.T) {
		client, err := New(WithAWSConfig(&aws.Config{}))
		require.NoError(t, err)
		assert.Equal(t, "us-east-1", client.config.Region)
	})
}

func TestNewRetryConfiguration(t *testing.T) {
	client, err := New(
		WithAWSConfig(&aws.Config{}),
		WithMaxRetries(7),
	)

	require.NoError(t, err)
	assert.Equal(t, 7, client.config.RetryMaxAttempts)
}

func TestClientOptionPlumbing(t *testing.T) {
	cfg := &s3types.ClientConfig{}

	WithEndpoint("http://localhost:4566")(cfg)
	WithTimeout(30 * time.Second)(cfg)
	WithCustomHTTPClient(&http.Client{})(cfg)
	WithPartSize(0)(cfg) // zero is ignored

	assert.Equal(t, "http://localhost:4566", cfg.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.NotNil(t, cfg.CustomHTTPClient)
	assert.Zero(t, cfg.PartSize)
}

func TestSetFilesystem(t *testing.T) {
	client := NewWithClient(&testutil.MockS3Client{})
	memfs := billy.NewInMemoryFS()

	client.SetFilesystem(memfs)
	assert.Equal(t, memfs, client.getFilesystem())
}

func TestClose(t *testing.T) {
	client := NewWithClient(&testutil.MockS3Client{})
	require.NoError(t, client.Close())
}
