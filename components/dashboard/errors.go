package dashboard

import (
	"errors"
	"fmt"
)

// ErrSellerNotFound is returned by transports when a requested seller id is
// not part of the loaded sellers collection.
var ErrSellerNotFound = errors.New("dashboard: seller not found")

var (
	// ErrUnknownPage is returned when a page code is not in the layout.
	ErrUnknownPage = errors.New("dashboard: unknown page")
	// ErrSessionNotFound is returned for unknown or evicted session ids.
	ErrSessionNotFound = errors.New("dashboard: session not found")
	// ErrSelectionLoading is returned when a seller is picked before the
	// sellers list has settled.
	ErrSelectionLoading = errors.New("dashboard: sellers still loading")
	errSessionClosed    = fmt.Errorf("%w: closed", ErrSessionNotFound)
)

func errUnknownWidget(code string) error {
	return fmt.Errorf("dashboard: unknown widget %q", code)
}

// NetworkError reports a transport failure or a non-2xx response.
type NetworkError struct {
	Path   string
	Status int
	Body   string
	Err    error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Status != 0 && e.Body != "":
		return fmt.Sprintf("analytics: GET %s: remote error %d: %s", e.Path, e.Status, e.Body)
	case e.Status != 0:
		return fmt.Sprintf("analytics: GET %s: remote error %d", e.Path, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("analytics: GET %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("analytics: GET %s failed", e.Path)
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// MissingParameterError is returned when a per-seller endpoint is called
// without a seller identifier.
type MissingParameterError struct {
	Param    string
	Endpoint string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("analytics: %s is required for %s", e.Param, e.Endpoint)
}

// IsNetworkError reports whether err wraps a NetworkError.
func IsNetworkError(err error) bool {
	var target *NetworkError
	return errors.As(err, &target)
}

// IsMissingParameter reports whether err wraps a MissingParameterError.
func IsMissingParameter(err error) bool {
	var target *MissingParameterError
	return errors.As(err, &target)
}
