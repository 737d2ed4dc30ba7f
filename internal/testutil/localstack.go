// Package testutil provides LocalStack fixtures for upload integration tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/localstack"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Pinned so integration runs are reproducible across machines.
const localstackImage = "localstack/localstack:3.8"

const localstackRegion = "us-east-1"

// SetupLocalStackTest starts a LocalStack container and returns an S3 client
// pointed at it with path-style addressing and static test credentials. The
// container is terminated when the test finishes.
func SetupLocalStackTest(t *testing.T) *s3.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping LocalStack test in short mode")
	}

	ctx := context.Background()
	container, err := localstack.Run(ctx,
		localstackImage,
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/_localstack/health").
				WithPort("4566").
				WithStartupTimeout(2*time.Minute),
		),
	)
	if err != nil {
		t.Fatalf("starting LocalStack: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminating LocalStack: %v", err)
		}
	})

	endpoint, err := localstackEndpoint(ctx, container)
	if err != nil {
		t.Fatalf("resolving LocalStack endpoint: %v", err)
	}
	client, err := localstackS3Client(ctx, endpoint)
	if err != nil {
		t.Fatalf("building S3 client: %v", err)
	}
	return client
}

func localstackEndpoint(ctx context.Context, container *localstack.LocalStackContainer) (string, error) {
	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "4566")
	if err != nil {
		return "", fmt.Errorf("container port: %w", err)
	}
	return fmt.Sprintf("http://%s:%s", host, port.Port()), nil
}

func localstackS3Client(ctx context.Context, endpoint string) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(localstackRegion),
		config.WithCredentialsProvider(aws.CredentialsProviderFunc(
			func(context.Context) (aws.Credentials, error) {
				return aws.Credentials{AccessKeyID: "test", SecretAccessKey: "test"}, nil
			})),
	)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String(endpoint)
	}), nil
}

// CreateTestBucket creates the bucket uploads land in.
func CreateTestBucket(ctx context.Context, client *s3.Client, bucket string) error {
	_, err := client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)})
	if err != nil {
		return fmt.Errorf("creating bucket %s: %w", bucket, err)
	}
	return nil
}

// DeleteTestBucket removes every uploaded object, then the bucket itself.
func DeleteTestBucket(ctx context.Context, client *s3.Client, bucket string) error {
	for {
		list, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{Bucket: aws.String(bucket)})
		if err != nil {
			return fmt.Errorf("listing objects: %w", err)
		}
		if len(list.Contents) == 0 {
			break
		}

		ids := make([]types.ObjectIdentifier, 0, len(list.Contents))
		for _, obj := range list.Contents {
			ids = append(ids, types.ObjectIdentifier{Key: obj.Key})
		}
		_, err = client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(bucket),
			Delete: &types.Delete{Objects: ids},
		})
		if err != nil {
			return fmt.Errorf("deleting objects: %w", err)
		}
	}

	if _, err := client.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String(bucket)}); err != nil {
		return fmt.Errorf("deleting bucket %s: %w", bucket, err)
	}
	return nil
}
