package extractor

import "errors"

var (
	// ErrInvalidURL is returned when a URL cannot be parsed or uses a scheme other than http/https.
	ErrInvalidURL = errors.New("invalid URL or unsupported scheme")

	// ErrPrivateIP is returned when a URL resolves to a private, loopback or link-local address.
	ErrPrivateIP = errors.New("private IP access denied (SSRF prevention)")

	// ErrTooManyRedirects is returned when the redirect chain exceeds the configured limit.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge is returned when a response exceeds the configured size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTimeout is returned when a fetch exceeds its timeout.
	ErrTimeout = errors.New("request timeout")

	// ErrReadabilityFailed is returned when no readable article text could be found.
	ErrReadabilityFailed = errors.New("content extraction failed")

	// ErrPDFUnreadable is returned when a PDF payload cannot be parsed.
	ErrPDFUnreadable = errors.New("pdf could not be read")

	// ErrTranscriptUnavailable is returned for media given only as a URL.
	// Speech-to-text is not supported; callers must supply the transcript text.
	ErrTranscriptUnavailable = errors.New("transcript unavailable: supply the transcript text")
)
