package scheduling

import "errors"

var (
	// ErrNoSlotsAvailable is the expected business outcome when the search
	// range holds no free window-compliant slot. Not a fault.
	ErrNoSlotsAvailable = errors.New("no available time slots in the requested range")

	// ErrInvalidRequest rejects malformed search parameters before any
	// enumeration begins.
	ErrInvalidRequest = errors.New("invalid slot search request")
)
