// Package errorspkg holds errors shared across feature packages.
package errorspkg

import "errors"

// ErrInternal is returned to the client in place of any unexpected error,
// whose details stay in the logs.
var ErrInternal = errors.New("internal")
