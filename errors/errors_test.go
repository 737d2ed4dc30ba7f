package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "op only",
			err:  NewError("putContent", cause),
			want: "s3stream.putContent: boom",
		},
		{
			name: "bucket and key",
			err:  NewObjectError("uploadPart", "my-bucket", "my-key", cause),
			want: "s3stream.uploadPart my-bucket/my-key: boom",
		},
		{
			name: "bucket only",
			err:  NewError("createSession", cause).WithBucket("my-bucket"),
			want: "s3stream.createSession bucket my-bucket: boom",
		},
		{
			name: "key only",
			err:  NewError("putContent", cause).WithKey("my-key"),
			want: "s3stream.putContent object my-key: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	err := NewObjectError("uploadPart", "b", "k", ErrInsufficientData)

	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Equal(t, ErrInsufficientData, errors.Unwrap(err))
}

func TestWithMessageKeepsChain(t *testing.T) {
	err := NewError("calcPartInfo", ErrInvalidPartSize).
		WithMessage("part size 1024 must be between 5242880 and 5368709120")

	assert.ErrorIs(t, err, ErrInvalidPartSize)
	assert.Contains(t, err.Error(), "part size 1024")
}

func TestErrorAsTarget(t *testing.T) {
	var target *Error
	err := error(NewObjectError("putContent", "b", "k", errors.New("x")))

	require.True(t, errors.As(err, &target))
	assert.Equal(t, "putContent", target.Op)
	assert.Equal(t, "b", target.Bucket)
	assert.Equal(t, "k", target.Key)
}

func TestHelperPredicates(t *testing.T) {
	assert.True(t, IsInsufficientData(NewError("upload", ErrInsufficientData)))
	assert.False(t, IsInsufficientData(NewError("upload", ErrTooMuchData)))

	assert.True(t, IsTooMuchData(NewError("upload", ErrTooMuchData)))
	assert.False(t, IsTooMuchData(errors.New("other")))

	assert.True(t, IsInvalidInput(NewError("putContent", ErrInvalidInput)))
	assert.False(t, IsInvalidInput(nil))
}
