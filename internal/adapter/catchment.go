package adapter

import "github.com/chrono-city/chronoscore/internal/indicator"

// FromCatchment accepts indicators already aggregated over a walking
// catchment. Catchment pipelines compute densities themselves, so no
// derivation happens here; the bundle is deep-copied to keep callers'
// values from aliasing into the scorer.
func FromCatchment(raw *indicator.Raw) *indicator.Raw {
	if raw == nil {
		return &indicator.Raw{}
	}
	return raw.Clone()
}
