package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forge-cloud/s3stream/errors"
	"github.com/forge-cloud/s3stream/s3types"
)

func TestValidateBucketName(t *testing.T) {
	valid := []string{
		"my-bucket",
		"my-bucket123",
		"my.bucket",
		"abc",
		"a" + strings.Repeat("b", 62),
	}
	for _, bucket := range valid {
		assert.NoError(t, ValidateBucketName(bucket), "bucket %q", bucket)
	}

	invalid := []struct {
		name   string
		bucket string
	}{
		{"empty", ""},
		{"too short", "ab"},
		{"too long", strings.Repeat("a", 64)},
		{"uppercase", "My-Bucket"},
		{"underscore", "my_bucket"},
		{"leading hyphen", "-bucket"},
		{"trailing hyphen", "bucket-"},
		{"leading dot", ".bucket"},
		{"trailing dot", "bucket."},
		{"leading digit", "1bucket"},
		{"adjacent dots", "my..bucket"},
		{"adjacent hyphens", "my--bucket"},
		{"dot next to hyphen", "my.-bucket"},
		{"ip address", "192.168.1.1"},
		{"reserved word", "localhost"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBucketName(tt.bucket)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidBucketName)
		})
	}
}

func TestValidateBucketNameIPDetection(t *testing.T) {
	// Names that are dot-separated but not IPs stay valid.
	assert.NoError(t, ValidateBucketName("a.b.c.d"))
	assert.NoError(t, ValidateBucketName("bucket.999.999.999"))

	assert.Error(t, ValidateBucketName("10.0.0.1"))
	assert.Error(t, ValidateBucketName("255.255.255.255"))
}

func TestValidateObjectKey(t *testing.T) {
	valid := []string{
		"file.txt",
		"path/to/file.txt",
		"file with spaces.txt",
		"file-名前.txt",
		"a/b/c/d/e/f/g.bin",
		strings.Repeat("k", 1024),
	}
	for _, key := range valid {
		assert.NoError(t, ValidateObjectKey(key), "key %q", key)
	}

	invalid := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"too long", strings.Repeat("k", 1025)},
		{"dot dot", "../etc/passwd"},
		{"embedded dot dot", "uploads/../../etc/passwd"},
		{"absolute path", "/etc/passwd"},
		{"windows drive", `c:\windows\system32`},
		{"control character", "file\x00.txt"},
		{"newline", "file\n.txt"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateObjectKey(tt.key)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidObjectKey)
		})
	}
}

func TestValidateMetadata(t *testing.T) {
	assert.NoError(t, ValidateMetadata(nil))
	assert.NoError(t, ValidateMetadata(map[string]string{}))
	assert.NoError(t, ValidateMetadata(map[string]string{
		"author":      "jane",
		"Environment": "production",
		"multi-line":  "first\nsecond",
	}))

	invalid := []struct {
		name string
		md   map[string]string
	}{
		{"empty key", map[string]string{"": "v"}},
		{"key too long", map[string]string{strings.Repeat("k", 129): "v"}},
		{"aws prefix", map[string]string{"aws:source": "v"}},
		{"x-amz prefix", map[string]string{"x-amz-meta-foo": "v"}},
		{"x-amz prefix upper", map[string]string{"X-Amz-Thing": "v"}},
		{"non-ascii key", map[string]string{"clé": "v"}},
		{"value too long", map[string]string{"k": strings.Repeat("v", 2049)}},
		{"control char value", map[string]string{"k": "a\x07b"}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMetadata(tt.md)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidInput)
		})
	}
}

func TestSanitizeMetadata(t *testing.T) {
	assert.Nil(t, SanitizeMetadata(nil))

	got := SanitizeMetadata(map[string]string{
		"key\x00with\x01controls": "value\x07here",
		"clean":                   "line one\nline two\ttabbed",
	})
	assert.Equal(t, map[string]string{
		"keywithcontrols": "valuehere",
		"clean":           "line one\nline two\ttabbed",
	}, got)
}

func TestValidateContentType(t *testing.T) {
	valid := []string{
		"",
		"text/plain",
		"application/json",
		"application/octet-stream",
		"text/html; charset=utf-8",
		"image/svg+xml",
	}
	for _, ct := range valid {
		assert.NoError(t, ValidateContentType(ct), "content type %q", ct)
	}

	invalid := []string{
		"notamimetype",
		"text/",
		"/plain",
		"text plain",
		"application/x-shockwave-flash",
		"application/java-archive; charset=utf-8",
	}
	for _, ct := range invalid {
		err := ValidateContentType(ct)
		require.Error(t, err, "content type %q", ct)
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	}
}

func TestValidateACL(t *testing.T) {
	valid := []s3types.ObjectACL{
		"",
		s3types.ACLPrivate,
		s3types.ACLPublicRead,
		s3types.ACLAuthenticatedRead,
		s3types.ACLBucketOwnerFullControl,
		"public-read-write",
		"aws-exec-read",
		"bucket-owner-read",
	}
	for _, acl := range valid {
		assert.NoError(t, ValidateACL(acl), "acl %q", acl)
	}

	for _, acl := range []s3types.ObjectACL{"PRIVATE", "public", "everyone", "private "} {
		err := ValidateACL(acl)
		require.Error(t, err, "acl %q", acl)
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	}
}
