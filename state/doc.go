// Package state holds the serializable design state of an editing session:
// an ordered sequence of design layers per product side, plus the versioned
// JSON codec for the persisted canvas_state contract.
//
// The store distinguishes a side that was never touched (no entry, absent
// from serialized state) from a side whose layers were all deleted (entry
// with an empty objects array). Layer variants the codec does not recognize
// are round-tripped opaquely so newer schema versions survive a pass through
// older tooling.
//
// Stores are owned by a single editing session and are not safe for
// concurrent use.
package state
