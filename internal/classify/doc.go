// Package classify derives a canonical status and an execution site from a
// job's transition log.
//
// Status classification is a finite decision table over the final transition
// and, for a few branches, the transition one position earlier. The lookback
// each branch needs is validated before any position is dereferenced, so a
// short history yields a typed error rather than an out-of-range read. Site
// resolution scans the whole log and keeps the most recent concrete site
// assignment.
//
// Both operations are pure and deterministic: the same document always
// produces the same outcome, which lets the indexing host re-run the map
// step at will.
package classify
