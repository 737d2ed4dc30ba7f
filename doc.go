// Package s3stream provides streaming uploads of object content to Amazon S3
// and S3-compatible stores. It wraps AWS SDK v2 behind a small client that
// accepts content of known or unknown length and handles part sizing,
// multipart orchestration, and failure cleanup.
//
// Content can come from memory, a file, or any io.Reader. The engine reads
// it one part at a time, so arbitrarily large objects and open-ended streams
// upload without buffering more than a single part. Small content goes out
// as a single put; everything else runs through a multipart session that is
// aborted on any failure after creation.
//
// Key features:
//   - Simple, zero-configuration usage with AWS credential chain
//   - Progressive enhancement through functional options
//   - Bounded memory: at most one part of the content is held at a time
//   - Zero-copy chunking from source reads to part bodies
//   - Automatic part sizing from the content size
//   - Comprehensive error handling with context
//
// Example usage:
//
//	client, err := s3stream.New(
//	    s3stream.WithRegion("us-west-2"),
//	)
//	if err != nil {
//	    return err
//	}
//
//	// Upload a file
//	result, err := client.PutFile(ctx, "my-bucket", "path/file.txt", "/local/file.txt")
//	if err != nil {
//	    return err
//	}
//
//	// Upload an open-ended stream
//	result, err = client.PutContent(ctx, "my-bucket", "backups/db.dump",
//	    content.FromReader(pipe, content.Unknown),
//	    s3stream.WithUploadPartSize(16*1024*1024),
//	)
package s3stream
