// Package preflight verifies the environment jobindex needs before touching
// the document store: directory permissions and database health.
package preflight
