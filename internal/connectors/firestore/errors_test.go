package firestore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name string
		code codes.Code
		want error
	}{
		{name: "unauthenticated", code: codes.Unauthenticated, want: ErrUnauthorized},
		{name: "permission denied", code: codes.PermissionDenied, want: ErrForbidden},
		{name: "not found", code: codes.NotFound, want: ErrNotFound},
		{name: "resource exhausted", code: codes.ResourceExhausted, want: ErrRateLimited},
		{name: "failed precondition", code: codes.FailedPrecondition, want: ErrMissingIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapError(status.Error(tt.code, "boom"))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWrapError_Passthrough(t *testing.T) {
	assert.NoError(t, WrapError(nil))

	plain := errors.New("plain")
	assert.Equal(t, plain, WrapError(plain))

	internal := status.Error(codes.Internal, "boom")
	assert.Equal(t, internal, WrapError(internal))
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(status.Error(codes.Unavailable, "down")))
	assert.True(t, IsTransient(status.Error(codes.DeadlineExceeded, "slow")))
	assert.True(t, IsTransient(status.Error(codes.ResourceExhausted, "quota")))
	assert.True(t, IsTransient(status.Error(codes.Aborted, "contention")))
	assert.True(t, IsTransient(ErrRateLimited))

	assert.False(t, IsTransient(status.Error(codes.PermissionDenied, "no")))
	assert.False(t, IsTransient(ErrMissingIndex))
	assert.False(t, IsTransient(errors.New("plain")))
}

func TestClassifiers(t *testing.T) {
	assert.True(t, IsUnauthorized(ErrUnauthorized))
	assert.True(t, IsUnauthorized(status.Error(codes.Unauthenticated, "nope")))
	assert.False(t, IsUnauthorized(ErrForbidden))

	assert.True(t, IsForbidden(ErrForbidden))
	assert.True(t, IsForbidden(status.Error(codes.PermissionDenied, "nope")))

	assert.True(t, IsRateLimited(ErrRateLimited))
	assert.True(t, IsRateLimited(status.Error(codes.ResourceExhausted, "quota")))
	assert.False(t, IsRateLimited(ErrNotFound))
}
