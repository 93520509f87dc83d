// Package demo provides the example components served by the laiweb CLI
// and dev server.
//
// Each demo is a runtime.Definition registered under a short name:
//
//	counter  a number with increment and decrement buttons
//	list     a fragment of keyed buttons
//	todo     a keyed todo list with add, remove and reverse
//	app      a root combining the three after a leading paragraph
//
// Use Lookup to resolve a name and Names to list them.
package demo
