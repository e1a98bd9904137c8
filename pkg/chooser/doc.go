// Package chooser implements the resolution engine that maps a URL to a
// browser profile, asking the user when no rule decides, and persisting
// remembered decisions back to the configuration.
package chooser
