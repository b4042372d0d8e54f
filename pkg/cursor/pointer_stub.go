//go:build !windows && !linux

package cursor

// NewQuery returns a no-op query on systems without pointer support.
func NewQuery() Query { return nullQuery{} }
