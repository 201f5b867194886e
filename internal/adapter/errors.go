package adapter

import "errors"

var (
	// ErrUnauthorized means the portal rejected the stored credentials.
	ErrUnauthorized = errors.New("remote portal rejected credentials")
	// ErrNotFound means the requested portal resource does not exist.
	ErrNotFound = errors.New("remote portal resource not found")
	// ErrServiceUnavailable covers 5xx responses from the portal.
	ErrServiceUnavailable = errors.New("remote portal is unavailable")
	// ErrUnexpectedStatus covers every other non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected status from remote portal")
	// ErrConnection covers transport failures before any response arrived.
	ErrConnection = errors.New("error connecting to remote portal")
	// ErrMalformedResponse means the portal answered with a body the
	// adapter could not decode.
	ErrMalformedResponse = errors.New("malformed response from remote portal")
)
