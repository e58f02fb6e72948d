// Package preflight provides readiness checks for the filesystem paths the
// lifecycle explorer depends on.
//
// The serve and db init commands run these before touching the database so a
// missing or unwritable data directory surfaces as a clear message instead of
// a deep SQLite error.
package preflight
