// Package tableio loads tables from CSV files, SQLite queries and Parquet
// files, and writes tables as CSV.
package tableio
