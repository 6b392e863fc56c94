package domain

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrDataLoad is returned when a content collection is missing, is not valid JSON
	// or fails record validation. It is fatal for the request.
	ErrDataLoad = errors.New("content could not be loaded")
	// ErrMissingReference marks a cross-reference (agenda item -> presentation,
	// presentation -> speaker) that points at a record that does not exist.
	ErrMissingReference = errors.New("missing reference")
	// ErrInvalidTimeSpec is returned for unknown timezones and malformed date or clock strings.
	ErrInvalidTimeSpec = errors.New("invalid time specification")

	ErrRegistrationClosed = errors.New("registration is closed")

	// Mailing list outcomes. ErrMailingListUnavailable is the transient subset
	// (network failures, throttling, provider outages) and may be retried.
	ErrAlreadySubscribed      = errors.New("already subscribed")
	ErrMailingList            = errors.New("mailing list error")
	ErrMailingListUnavailable = errors.New("mailing list unavailable")
)
