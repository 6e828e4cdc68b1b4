// Package bruteforce provides an exact nearest-neighbour index that scans all
// rows and scores them with the configured metric. It is the reference
// behaviour the other indexes must agree with.
package bruteforce
