// Package joiner joins a main table with an ordered list of auxiliary tables.
//
// A Joiner only holds configuration. Fit checks the key columns and returns a
// Fitted joiner, whose Transform folds the fuzzy join over the auxiliary
// tables in order: every step joins onto the running result, so the output
// always has the main table's rows, in order.
package joiner
