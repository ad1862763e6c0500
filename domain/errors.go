package domain

import (
	"github.com/pkg/errors"
)

// Error kinds surfaced by the catalog and playback collaborators.
var (
	// ErrAuthentication is fatal to a session: credentials must be re-entered.
	ErrAuthentication = errors.New("authentication failed")
	// ErrCatalogFetch abandons the triggering command and leaves state unchanged.
	ErrCatalogFetch = errors.New("catalog fetch failed")
	// ErrStreamResolution keeps the queue position but nothing starts playing.
	ErrStreamResolution = errors.New("stream resolution failed")
	// ErrDeviceIdentity is an unrecoverable startup error.
	ErrDeviceIdentity = errors.New("device identity unavailable")
)

// Error ties a cause to one of the error kinds above so callers can match
// the kind with errors.Is while keeping the original cause.
type Error struct {
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool { return target == e.Kind }

// Wrap classifies err as kind. A nil err yields nil. Errors that already
// carry an authentication kind keep it, since that one ends the session.
func Wrap(kind, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrAuthentication) {
		return err
	}
	return errors.WithStack(&Error{Kind: kind, Err: err})
}
