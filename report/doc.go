// Package report turns a clustering Result into something a person can read.
//
// For every partition it sums the member rows of the matrix and lists the
// highest-weighted words, either as plain text or as a JSON document.
// TopWords expects the matrix Run was given; its rows are unit length by then.
package report
