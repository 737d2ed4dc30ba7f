// Package internal contains private implementation details for the upload
// engine. These packages are not intended for external use and may change
// without notice.
//
// The internal packages are organized as follows:
//   - operations: Core S3 operation implementations
//   - partplan: Part sizing and count computation
//   - s3api: Abstract interface over the AWS SDK S3 client
//   - validation: Input validation logic
//   - testutil: Shared test mocks and helpers
package internal
