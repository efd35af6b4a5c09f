package entity

import (
	"fmt"
	"net/url"
	"strings"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// DefaultMinContentLength is the shortest text accepted for summarization.
const DefaultMinContentLength = 10

// ValidateInput checks a SummarizeInput before any completion call is made.
// Text content shorter than minLength runes (after trimming) is rejected;
// binary payloads are only required to be non-empty.
func ValidateInput(in SummarizeInput, minLength int) error {
	body := in.Content.Text
	if body == "" && len(in.Content.Raw) == 0 {
		return NewInvalidInput("content", "is required")
	}
	if body != "" {
		n := len([]rune(strings.TrimSpace(body)))
		if n == 0 {
			return NewInvalidInput("content", "is required")
		}
		if n < minLength {
			return NewInvalidInput("content", fmt.Sprintf("is too short (%d < %d characters)", n, minLength))
		}
	}

	if in.Type != "" && !in.Type.IsSupported() {
		return NewInvalidInput("type", fmt.Sprintf("%q is not supported", in.Type))
	}

	if in.Content.SourceRef != "" && IsWebURL(in.Content.SourceRef) {
		if err := ValidateURL(in.Content.SourceRef); err != nil {
			return err
		}
	}

	return in.Options.WithDefaults().Validate()
}

// IsWebURL reports whether s looks like an http(s) URL.
func IsWebURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ValidateURL validates the format of a URL.
// It checks that the URL is well-formed, uses HTTP/HTTPS scheme, and has a valid host.
// Network-level checks (private IPs) belong to the fetcher that dials the URL.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return NewInvalidInput("url", "is required")
	}

	// DoS protection: enforce maximum URL length
	if len(rawURL) > maxURLLength {
		return NewInvalidInput("url", fmt.Sprintf("must not exceed %d characters", maxURLLength))
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return NewInvalidInput("url", "cannot be parsed")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return NewInvalidInput("url", "must use http or https scheme")
	}

	if parsedURL.Host == "" {
		return NewInvalidInput("url", "must have a valid host")
	}

	return nil
}
