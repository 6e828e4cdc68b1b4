// Package join assembles matched tables. Assemble appends the columns of the
// matched right rows to every left row, keeping the left row count and order,
// and FuzzyJoin runs vectorization, matching and assembly in one call.
package join
