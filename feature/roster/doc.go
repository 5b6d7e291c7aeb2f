// Package roster retrieves the live server roster from the remote endpoint
// and normalizes it into canonical records.
//
// The endpoint's response schema varies between deployments: the list may
// arrive under a "query" key, as a bare array, or as the values of a plain
// object, and individual fields go by several names. Normalization is
// defensive and data-driven: per canonical field an ordered list of source
// keys is tried and the first truthy value wins, with a stated default as
// the fallback. A malformed entry is skipped, never fatal; only transport
// and decoding failures fail the fetch.
package roster
