package advisor

import (
	"errors"
	"fmt"
)

var (
	// ErrAdvisory is matched by every failure of the advisory service.
	ErrAdvisory = errors.New("advisory service failure")

	ErrTransport        = fmt.Errorf("%w: transport", ErrAdvisory)
	ErrStatus           = fmt.Errorf("%w: unexpected status", ErrAdvisory)
	ErrMalformedBody    = fmt.Errorf("%w: malformed body", ErrAdvisory)
	ErrUnexpectedSchema = fmt.Errorf("%w: unexpected schema", ErrAdvisory)
)

// StatusError carries the HTTP status of a non-2xx reply.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("advisory service replied %d: %s", e.Code, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrStatus || target == ErrAdvisory
}
