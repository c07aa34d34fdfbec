// Package emit defines the boundary between the map step and the external
// aggregation stage.
//
// Each qualifying job document yields exactly one Record: a composite
// (workflow, status, site) key with a unit value. Summing records that share
// a key is the collaborator's job; this package only carries them across the
// boundary. The Collector keeps records in memory for tests and CLI
// summaries, and the JSONL writer streams them to whatever transport feeds
// the aggregator.
package emit
