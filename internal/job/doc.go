// Package job defines the job document model read by the status index.
//
// A Document is the final snapshot of a job as recorded by the external
// workload-management system: a type tag, the owning workflow, and the
// ordered log of lifecycle state transitions. The package owns the closed
// state and status vocabularies, the transition-log decoding rules
// (including recovery of positional order from map-shaped storage), and the
// Site type that replaces the "Agent" placeholder with an explicit
// unassigned variant.
//
// Treat this package as the single source of truth for document semantics;
// classification logic lives in the classify package and reads these types
// without mutating them.
package job
