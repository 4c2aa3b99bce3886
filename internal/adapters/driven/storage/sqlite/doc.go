// Package sqlite implements the StateStore on a single SQLite database.
//
// It is the transactional alternative to the jsonfile backend: the same
// load/mutate/persist-whole-state contract, with each persist executed
// as one transaction so a failed write never leaves the state partially
// committed. Records are stored one row per mapping entry with a JSON
// payload, keeping the layout portable between backends.
package sqlite
