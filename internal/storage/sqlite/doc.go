// Package sqlite persists registration runs in SQLite.
//
// A run records the inputs and totals of one registration together with the
// resolved pose of every scanner and the deduplicated global beacon set.
// The schema is owned by the embedded golang-migrate migrations; Open
// applies any that are pending.
package sqlite
