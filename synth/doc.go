// Package synth produces representative example values from JSON-Schema
// fragments and selects the best-fit media type from content maps.
//
// Import path: github.com/apitree/apitree/synth
//
// [Synthesizer.Synthesize] builds a structurally plausible value for a
// schema that has no author-supplied example. Per node, the first
// applicable rule wins: a literal const, the first enum entry, the
// declared default, the declared example, then type-directed synthesis.
// The object type is inferred when properties is present without an
// explicit type, and array when items is present.
//
// Synthesis is intentionally lossy and deterministic: the same schema
// yields the same sample on every call, which stable preview rendering
// and test reproducibility both rely on. The only time-dependent outputs,
// date and date-time strings, come from an injectable clock. Recursion is
// capped so self-referential schemas that survived dereferencing as
// deeply nested structures still terminate; past the cap the synthesizer
// returns a null placeholder.
//
// The synthesizer operates on dereferenced fragments but never requires
// them: raw fragments with remaining combinators degrade gracefully
// (anyOf/oneOf pick their first branch, allOf folds its branches, unknown
// shapes become null).
package synth
