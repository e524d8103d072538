// Package analytics derives journaling statistics from a user's entries.
//
// The package owns no storage. An Engine pulls entries and their mood/tag
// associations through the repository interfaces declared here and reduces
// them to an immutable Snapshot. Streak values always cover the user's full
// history; every other figure honours the optional reporting window.
package analytics
