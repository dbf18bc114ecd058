package python

import "context"

// Analyzer produces a digest for a single Python source file.
//
// Implementations must return an error only when no digest could be
// obtained at all (analyzer unavailable, timeout, undecodable output);
// analyzer-side failures travel inside the digest with Success false.
type Analyzer interface {
	Analyze(ctx context.Context, path string) (*Digest, error)
}
