package gmail

import (
	"errors"

	"google.golang.org/api/googleapi"
)

// Remote failures split into two buckets the UI cares about: ones that need
// the user to re-authorize, and everything else (transient/network/quota).
var (
	ErrAuthRequired      = errors.New("authorization required")
	ErrRemoteUnavailable = errors.New("remote service unavailable")
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input provided")
)

// classify maps a Gmail API error onto one of the sentinel errors so callers
// can branch with errors.Is instead of inspecting googleapi internals.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			return errors.Join(ErrAuthRequired, err)
		case 404:
			return errors.Join(ErrNotFound, err)
		case 400:
			return errors.Join(ErrInvalidInput, err)
		}
	}
	return errors.Join(ErrRemoteUnavailable, err)
}

// IsAuthError reports whether the failure should direct the user to a
// re-authorization action rather than a retry.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthRequired)
}

// IsRetryableError reports whether the failure is plausibly transient.
func IsRetryableError(err error) bool {
	return errors.Is(err, ErrRemoteUnavailable)
}
