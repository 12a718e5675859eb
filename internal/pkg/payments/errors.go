package payments

import "errors"

var (
	// ErrNoServiceSelected is returned when a checkout request selects no
	// service at all.
	ErrNoServiceSelected = errors.New("please select at least one service")

	// ErrUnknownTier is returned before any provider call when a selection
	// names a tier the catalog does not know.
	ErrUnknownTier = errors.New("unknown pricing tier")

	// ErrNoSubscription is returned by cancel when the caller has no active
	// provider subscription on file.
	ErrNoSubscription = errors.New("no active subscription found")
)
