// Package s3stream provides client initialization and configuration.
//
// The Client provides a streaming upload interface for S3-compatible object
// stores: content of known or unknown length is chunked into parts and sent
// either as a single put or through a multipart session, with cleanup on
// failure.
package s3stream

import (
	"context"
	"net/http"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"

	"github.com/forge-cloud/s3stream/errors"
	"github.com/forge-cloud/s3stream/internal/s3api"
	"github.com/forge-cloud/s3stream/s3types"
)

// Client is a streaming upload client for an S3-compatible store.
type Client struct {
	// s3Client is the remote side of every upload
	s3Client s3api.S3API

	// config holds the AWS configuration
	config aws.Config

	// clientCfg holds the resolved client options
	clientCfg s3types.ClientConfig

	// mu protects concurrent access to client configuration
	mu sync.RWMutex

	// fs is the filesystem abstraction for file-backed content
	fs fs.Filesystem
}

// New creates a new client with the provided options. It loads AWS
// credentials using the default credential chain and applies the specified
// configuration options.
//
// Example:
//
//	client, err := s3stream.New(
//	    s3stream.WithRegion("us-west-2"),
//	    s3stream.WithMaxRetries(3),
//	)
func New(opts ...s3types.Option) (*Client, error) {
	clientCfg := &s3types.ClientConfig{
		MaxRetries: 3, // Default retry count
		Timeout:    0, // No timeout by default
	}
	for _, opt := range opts {
		opt(clientCfg)
	}

	var cfg aws.Config
	var err error

	if clientCfg.CustomAWSConfig != nil {
		cfg = *clientCfg.CustomAWSConfig
	} else {
		cfg, err = config.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, errors.NewError("client initialization", err)
		}
	}

	if clientCfg.Region != "" {
		cfg.Region = clientCfg.Region
	} else if cfg.Region == "" {
		cfg.Region = "us-east-1" // AWS default region
	}

	if clientCfg.MaxRetries > 0 {
		cfg.RetryMaxAttempts = clientCfg.MaxRetries
	}

	var s3Opts []func(*s3.Options)

	if clientCfg.Endpoint != "" {
		endpoint := clientCfg.Endpoint
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}

	if clientCfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	if clientCfg.CustomHTTPClient != nil {
		httpClient := clientCfg.CustomHTTPClient
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = httpClient
		})
	} else if clientCfg.Timeout > 0 {
		httpClient := &http.Client{
			Timeout: clientCfg.Timeout,
		}
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = httpClient
		})
	}

	s3Client := s3.NewFromConfig(cfg, s3Opts...)

	var filesystem fs.Filesystem
	if clientCfg.Filesystem != nil {
		filesystem = clientCfg.Filesystem
	} else {
		// Default to OS filesystem rooted at /
		filesystem = billy.NewOSFS("/")
	}

	return &Client{
		s3Client:  s3Client,
		config:    cfg,
		clientCfg: *clientCfg,
		fs:        filesystem,
	}, nil
}

// NewWithClient creates a new client with a custom S3 backend.
// This is primarily used for testing with mocked clients.
func NewWithClient(s3Client s3api.S3API, opts ...s3types.Option) *Client {
	clientCfg := &s3types.ClientConfig{}
	for _, opt := range opts {
		opt(clientCfg)
	}

	var filesystem fs.Filesystem
	if clientCfg.Filesystem != nil {
		filesystem = clientCfg.Filesystem
	} else {
		filesystem = billy.NewOSFS("/")
	}

	return &Client{
		s3Client:  s3Client,
		config:    aws.Config{},
		clientCfg: *clientCfg,
		fs:        filesystem,
	}
}

// SetFilesystem sets the filesystem implementation for the client.
// This is useful for testing or when the filesystem needs to be changed after creation.
func (c *Client) SetFilesystem(filesystem fs.Filesystem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fs = filesystem
}

func (c *Client) getFilesystem() fs.Filesystem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fs
}

// Close releases any resources held by the client.
// Currently a no-op but included for future extensibility.
func (c *Client) Close() error {
	return nil
}
