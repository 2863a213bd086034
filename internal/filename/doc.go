// Package filename synthesizes filesystem-safe, byte-length-bounded,
// deduplicated filename stems from web page titles.
//
// The pipeline is pure string transformation with no filesystem or network
// access, composed left to right:
//
//	Sanitize → Extract → Assemble → Resolver.Resolve → Encode
//
// All budgets are measured in encoded UTF-8 bytes, never character counts,
// and no stage ever splits a multi-byte codepoint. Every stage has a
// terminal fallback, so the pipeline never fails for any input: empty
// titles yield a placeholder stem, saturated registries fall back to
// timestamps, and oversized results are clamped with a stable hash.
package filename
