package aurion

import "errors"

var (
	// ErrLoginFailed means the portal did not answer the credential POST
	// with a redirect. Wrong credentials, terminal for the session.
	ErrLoginFailed = errors.New("failed to login: username or password might be wrong")

	// ErrBadProtocol means a structural assumption about the portal's
	// markup no longer holds (missing delimiter, header or attribute).
	// Not retryable, the portal likely changed.
	ErrBadProtocol = errors.New("unexpected portal response")

	// ErrPrecondition means an operation was invoked on an unknown,
	// unloaded or non-leaf menu node. A caller logic error.
	ErrPrecondition = errors.New("menu precondition failed")

	// ErrMissingToken means login succeeded but a session token (view
	// state or form id) could not be extracted, so token-dependent calls
	// cannot proceed.
	ErrMissingToken = errors.New("session token missing")

	// ErrMalformedTitle means an event title does not carry enough
	// " - "-delimited segments to hold rooms, subject and participants.
	ErrMalformedTitle = errors.New("event title has too few segments")

	// ErrUnsupportedTitleVariant means the title uses the known alternate
	// institutional time format ("12h00 - 13h00 - ..."), whose grammar is
	// not implemented.
	ErrUnsupportedTitleVariant = errors.New("event title uses an unsupported institutional format")

	// ErrUnrecognizedTitle means the title matches no known format at all.
	ErrUnrecognizedTitle = errors.New("event title format not recognized")
)
