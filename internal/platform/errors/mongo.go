package errors

// MongoDB-specific helpers for mapping driver errors to project ErrorCode and retry semantics

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

// Server error codes we care about
const (
	mongoErrUnauthorized         = 13
	mongoErrAuthenticationFailed = 18
)

// IsMongoDuplicateKey reports whether any write in err hit a unique index
func IsMongoDuplicateKey(err error) bool { return err != nil && mongo.IsDuplicateKeyError(err) }

// IsMongoAuth reports whether err is an authentication or authorization failure.
// Handshake failures arrive as wrapped connection errors, so the text is checked too
func IsMongoAuth(err error) bool {
	if err == nil {
		return false
	}
	var se mongo.ServerError
	if stderrs.As(err, &se) {
		if se.HasErrorCode(mongoErrUnauthorized) || se.HasErrorCode(mongoErrAuthenticationFailed) {
			return true
		}
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "authentication failed") || strings.Contains(s, "unable to authenticate")
}

// IsMongoUnavailable reports network errors, driver timeouts and server selection failures
func IsMongoUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return true
	}
	if stderrs.Is(err, mongo.ErrClientDisconnected) {
		return true
	}
	var sel topology.ServerSelectionError
	return stderrs.As(err, &sel)
}

// MongoErrorCode maps a driver error to an ErrorCode
// Order matters: auth failures often also look like network errors
func MongoErrorCode(err error) ErrorCode {
	switch {
	case IsMongoAuth(err):
		return ErrorCodeUnauthorized
	case IsMongoDuplicateKey(err):
		return ErrorCodeDuplicateKey
	case IsMongoUnavailable(err):
		return ErrorCodeUnavailable
	default:
		return ErrorCodeLoad
	}
}

// FromMongo wraps a driver error with a mapped ErrorCode and message.
// If err is nil, returns nil
func FromMongo(err error, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, MongoErrorCode(err), msg)
}

// FromMongof is the formatted variant of FromMongo
func FromMongof(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, MongoErrorCode(err), fmt.Sprintf(format, a...))
}

// IsRetryable reports whether a store error represents a transient condition.
// Nothing in the connector retries; this only feeds the "retryable" log field so
// an operator can tell whether re-running the schedule is likely to help
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	// local cancellations are the caller's decision, not the store's
	if stderrs.Is(err, context.Canceled) {
		return false
	}

	var se mongo.ServerError
	if stderrs.As(err, &se) && se.HasErrorLabel("RetryableWriteError") {
		return true
	}
	if IsMongoAuth(err) || IsMongoDuplicateKey(err) {
		return false
	}
	return IsMongoUnavailable(err)
}
