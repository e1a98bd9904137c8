package urlx

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// ErrInvalidURL is returned when no host can be derived from the input.
var ErrInvalidURL = errors.New("invalid url")

// Parts holds the host components extracted from a URL.
type Parts struct {
	// Host is the full hostname, lowercased, with any leading "www." removed.
	Host string
	// Domain is the registrable domain (eTLD+1) of Host. For hosts without a
	// known public suffix (e.g. "localhost", bare IPs), it equals Host.
	Domain string
}

// Extract derives the host and registrable domain from rawURL.
// A scheme is optional; "mail.google.com/inbox" extracts the same host as
// "https://mail.google.com/inbox". It returns [ErrInvalidURL] when the input
// contains no parseable host.
func Extract(rawURL string) (Parts, error) {
	host, err := extractHost(rawURL)
	if err != nil {
		return Parts{}, err
	}

	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimSuffix(host, ".")

	if host == "" {
		return Parts{}, fmt.Errorf("%w: %q has no host", ErrInvalidURL, rawURL)
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		// Hosts that the public suffix list cannot reduce (single-label
		// hosts, IP addresses) are matched as-is.
		domain = host
	}

	return Parts{Host: host, Domain: domain}, nil
}

func extractHost(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidURL)
	}

	u, err := url.Parse(rawURL)
	if err == nil && u.Hostname() != "" {
		return u.Hostname(), nil
	}

	// Scheme-less input like "example.com/path" parses as a relative URL
	// with an empty host. Retry with an assumed scheme.
	if err == nil && u.Scheme == "" {
		u, err = url.Parse("https://" + rawURL)
		if err == nil && u.Hostname() != "" {
			return u.Hostname(), nil
		}
	}

	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	return "", fmt.Errorf("%w: %q has no host", ErrInvalidURL, rawURL)
}
