// Package rule determines which browser profile should open a URL, by
// matching glob patterns against the URL's host and registrable domain.
package rule
