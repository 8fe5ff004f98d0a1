package firestore

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Common Firestore errors.
var (
	// ErrUnauthorized indicates invalid or expired credentials.
	ErrUnauthorized = errors.New("firestore: unauthorised (invalid credentials)")

	// ErrForbidden indicates insufficient permissions on the project or
	// collection.
	ErrForbidden = errors.New("firestore: forbidden (insufficient permissions)")

	// ErrNotFound indicates the database or collection was not found.
	ErrNotFound = errors.New("firestore: resource not found")

	// ErrRateLimited indicates the backend rejected the request for quota
	// or rate reasons.
	ErrRateLimited = errors.New("firestore: rate limit exceeded")

	// ErrMissingIndex indicates the query needs a composite index that does
	// not exist. Surfaced as-is so the operator can create it.
	ErrMissingIndex = errors.New("firestore: query requires a composite index")
)

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || status.Code(err) == codes.Unauthenticated
}

// IsForbidden returns true if the error indicates insufficient permissions.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden) || status.Code(err) == codes.PermissionDenied
}

// IsRateLimited returns true if the error indicates quota exhaustion.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited) || status.Code(err) == codes.ResourceExhausted
}

// IsTransient returns true for failures worth retrying: backend hiccups,
// deadline overruns and rate limiting.
func IsTransient(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
		return true
	default:
		return errors.Is(err, ErrRateLimited)
	}
}

// WrapError converts a gRPC status error to a more specific sentinel.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.PermissionDenied:
		return ErrForbidden
	case codes.NotFound:
		return ErrNotFound
	case codes.ResourceExhausted:
		return ErrRateLimited
	case codes.FailedPrecondition:
		// Range queries over a replication key can require a composite
		// index; FAILED_PRECONDITION is how the backend reports it.
		return ErrMissingIndex
	default:
		return err
	}
}
