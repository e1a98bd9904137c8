// Package pattern matches domains and hosts against glob-style patterns.
//
// Patterns use fnmatch-like syntax (`*`, `?`, `[...]`), are anchored at both
// ends, and match case-insensitively. A pattern like `*.example.com` matches
// any subdomain of example.com, while `example.com` matches only the bare
// domain.
package pattern
