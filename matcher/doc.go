// Package matcher finds, for every row of a left vector set, the single
// nearest row of a right vector set and decides whether it is close enough
// to count as a match.
//
// Text keys are compared by cosine distance and accepted when
// distance <= 1 - matchScore. Numeric keys are compared by euclidean
// distance rescaled by the largest best-match distance of the left set, and
// accepted when 1 - distance/max >= matchScore.
package matcher
