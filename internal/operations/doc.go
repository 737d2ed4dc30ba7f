// Package operations contains the core S3 operation implementations.
// These functions handle the low-level AWS SDK interactions for streaming
// object uploads.
//
// Each operation is isolated into its own subpackage for better organization
// and testability.
package operations
