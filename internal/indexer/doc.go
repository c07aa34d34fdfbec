// Package indexer drives the map step over the document store.
//
// A scan walks every stored document, classifies the job documents, and
// hands one record per job to the emitter. Classification failures are
// data-integrity problems confined to a single document: they are logged,
// counted, and skipped so the rest of the scan proceeds (fail-fast mode
// aborts instead). A file lock keeps two scans from walking the same store
// at once; scheduling beyond that single-process guard belongs to whatever
// host invokes the scan.
package indexer
