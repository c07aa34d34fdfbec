// Package docstore persists job documents in SQLite for the status index to
// scan.
//
// The store stands in for the external document host: it keeps each document
// as the raw JSON blob it arrived as, plus a few extracted columns (type,
// workflow) for listing and stats. Nothing here interprets transition logs;
// that belongs to the job and classify packages. The reduce/query side of
// the index is not stored here at all.
//
// Schema changes bump the version in schema.go; users clear the database to
// adopt the new schema.
package docstore
