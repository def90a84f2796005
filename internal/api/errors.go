package api

import (
	"errors"
	"fmt"
)

// TransportError reports a failure to complete an HTTP exchange: the
// request never reached the service, or the response could not be decoded.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteRejected reports a non-2xx response from the service.
type RemoteRejected struct {
	Op      string
	Status  int
	Message string
}

func (e *RemoteRejected) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: remote returned %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: remote returned %d", e.Op, e.Status)
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsRemoteRejected reports whether err is (or wraps) a RemoteRejected.
func IsRemoteRejected(err error) bool {
	var rr *RemoteRejected
	return errors.As(err, &rr)
}
