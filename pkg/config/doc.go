// Package config owns the persisted choosr configuration: the browser
// profile catalog and the ordered URL rule list.
//
// The on-disk file is the single source of truth between runs. Loading
// tolerates a missing file (first run yields an empty configuration) but
// refuses to proceed past an unparseable one, so saved rules are never
// silently discarded. Saves are atomic at the file level.
package config
