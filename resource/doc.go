// Package resource bounds what loading a corpus may consume.
//
// A Controller reserves memory for matrices before they are allocated,
// limits how many inputs load at once, and throttles input IO.
// A nil *Controller imposes no limits.
package resource
