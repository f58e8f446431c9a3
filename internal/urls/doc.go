// Package urls holds the external URLs surfaced to the operator.
//
// The crash dialog prints these as literal text; nothing in the program
// fetches them.
package urls
