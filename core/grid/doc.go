// Package grid infers the physical row/column layout of vending machine
// selections from their textual identifiers alone, since the DEX wire
// format carries no coordinates.
//
// Analysis runs a fixed, ordered list of independent pure detectors.
// Each detector inspects the full identifier list, requires a minimum
// matching fraction before proposing anything, and scores its own
// candidate with a confidence in [0,1]. The single highest-confidence
// candidate wins; it is accepted only when it reaches the acceptance
// threshold, otherwise the pattern is reported as "unknown" and every
// identifier is left unassigned. Detectors never blend: exactly one
// candidate's assignments make it into the result.
//
// Analyze is a pure function over its input and never panics; empty or
// unusable input yields confidence 0 with an explanatory error.
package grid
