// Package engine implements the variable transformation pipeline and the
// template selection logic.
//
// ARCHITECTURE:
//
// Ordered Stage Pipeline:
// Transform runs a fixed, totally ordered list of stages over a single
// variable map. A later stage may read what earlier stages wrote - the
// founder-share fallback reads the fair-market-value resolved five stages
// earlier - so stage order is an observable part of the contract, never an
// accident of execution. Stages are declared in one slice and folded left
// to right; nothing here may be parallelized or reordered.
//
// Purity:
// The engine performs no I/O and holds no state across invocations. Every
// call takes its full input (responses plus variable mappings) and returns
// a fresh map. Concurrent calls need no locking.
//
// Silent degradation:
// A partially complete legal document with a visible blank beats a failed
// generation. Unparseable dates, malformed formulas, and dangling group
// references resolve to defaults or empty strings, logged at debug level
// and never raised. Validate reports what is missing; the caller decides
// whether that blocks anything.
//
// Template selection is an independent read of the same response set: each
// active template's rules are scored and the templates are partitioned
// into required, suggested, and optional buckets.
package engine
