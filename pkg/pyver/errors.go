package pyver

// RhizaError is the common marker implemented by all of rhiza's domain
// error types.  It is never a concrete error of its own; callers use it
// with errors.As to catch any rhiza-authored failure regardless of kind.
type RhizaError interface {
	error
	rhizaError()
}

// VersionSpecifierError reports a malformed version string or a malformed
// specifier clause.  The message always contains the offending substring
// and a human-readable reason.
type VersionSpecifierError struct {
	// Input is the offending version component or clause text.
	Input  string
	Reason string
}

func (e *VersionSpecifierError) Error() string { return e.Reason }

func (*VersionSpecifierError) rhizaError() {}

// PyProjectError reports a manifest-level failure: a missing
// requires-python field, or a requirement that no known candidate
// satisfies.
type PyProjectError struct {
	Reason string
}

func (e *PyProjectError) Error() string { return e.Reason }

func (*PyProjectError) rhizaError() {}

var (
	_ RhizaError = (*VersionSpecifierError)(nil)
	_ RhizaError = (*PyProjectError)(nil)
)
