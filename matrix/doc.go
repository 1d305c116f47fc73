// Package matrix holds the dense document-term matrix consumed by the
// clustering engine, and the decoder for its sparse triple text format.
//
// # Input Format
//
// The text format starts with three whitespace-separated header values:
// document count, word count and the number of non-zero entries (informational).
// They are followed by one "docID wordID count" triple per line, 1-indexed:
//
//	3
//	5
//	4
//	1 1 2
//	1 4 1
//	2 2 3
//	3 5 1
//
// Pairs that do not appear default to a weight of zero. Lines that do not
// start with three numbers are skipped.
package matrix
