// Package profile defines browser profiles: the browser kind, the
// browser-native identifier used to launch the profile, and user-facing
// metadata.
//
// Profiles live in the configuration's catalog keyed by a stable config key,
// independent of the display name. The catalog is rebuilt wholesale when
// browsers are rescanned.
package profile
