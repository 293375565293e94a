// Package appearance resolves the operating system light/dark preference
// and polls it for changes.
package appearance

import "context"

// Detector reports the OS appearance preference from one source.
type Detector interface {
	// Name identifies the detector in logs.
	Name() string

	// Priority orders detectors; higher priority is consulted first.
	Priority() int

	// Available reports whether the detector can run on this host.
	Available() bool

	// Detect queries the appearance source. ok is false when the source
	// gave no definite answer and the next detector should be consulted.
	Detect(ctx context.Context) (dark bool, ok bool)
}
