package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrStoreQuery      = errors.New("database query failed")
	ErrStoreConnection = errors.New("database connection failed")
	ErrObjectStorage   = errors.New("object storage operation failed")
)

// NewStoreError wraps an unexpected document-store failure with context
// about the operation. The underlying cause is kept attached for
// diagnostics and never silently swallowed.
func NewStoreError(operation, entity string, cause error) *ApiErr {
	if cause != nil {
		errStr := cause.Error()
		if strings.Contains(errStr, "server selection error") ||
			strings.Contains(errStr, "connection") {
			return &ApiErr{
				StatusCode: http.StatusServiceUnavailable,
				err:        ErrStoreConnection,
				Details:    "Unable to reach the document store",
				Cause:      cause,
			}
		}
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStoreQuery,
		Details:    fmt.Sprintf("Failed to %s %s", operation, entity),
		Cause:      cause,
	}
}

// NewObjectStorageError wraps an unexpected object-storage failure.
func NewObjectStorageError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrObjectStorage,
		Details:    fmt.Sprintf("Failed to %s", operation),
		Cause:      cause,
	}
}

func IsStoreConnection(err error) bool {
	return errors.Is(err, ErrStoreConnection)
}
