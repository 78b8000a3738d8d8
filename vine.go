package vine

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by this package wraps exactly one of
// these; callers classify with errors.Is.
var (
	// ErrConfig marks an invalid configuration, detected at construction time:
	// ranges too short, mismatched lengths, a non-monotonic input range, a
	// fully infinite single-segment range, or string templates that do not
	// share a skeleton.
	ErrConfig = errors.New("vine: invalid configuration")

	// ErrType marks an evaluation-time type failure: a parent node that does
	// not produce a scalar, or an unrecognized extrapolation mode.
	ErrType = errors.New("vine: type error")

	// ErrConsistency marks a promotion or registry failure: a node reference
	// without a native counterpart, a missing or wrong-kind native id, or a
	// duplicate registration.
	ErrConsistency = errors.New("vine: graph consistency error")
)

// Extrapolate selects the behavior applied when the input value falls outside
// the declared input range. The zero value is "unset": an unset side inherits
// Config.Extrapolate, which itself defaults to ExtrapolateExtend.
type Extrapolate uint8

const (
	extrapolateUnset Extrapolate = iota

	// ExtrapolateExtend continues the boundary segment's slope past the range.
	ExtrapolateExtend

	// ExtrapolateClamp pins the input to the nearest range boundary.
	ExtrapolateClamp

	// ExtrapolateIdentity returns the input unchanged, bypassing the mapping.
	ExtrapolateIdentity
)

// String returns the wire name of the mode ("extend", "clamp", "identity").
func (e Extrapolate) String() string {
	switch e {
	case ExtrapolateExtend:
		return "extend"
	case ExtrapolateClamp:
		return "clamp"
	case ExtrapolateIdentity:
		return "identity"
	}
	return "unset"
}

// ParseExtrapolate converts a wire name back to an Extrapolate mode.
// The empty string parses to the unset value so callers can apply defaults.
func ParseExtrapolate(s string) (Extrapolate, error) {
	switch s {
	case "":
		return extrapolateUnset, nil
	case "extend":
		return ExtrapolateExtend, nil
	case "clamp":
		return ExtrapolateClamp, nil
	case "identity":
		return ExtrapolateIdentity, nil
	}
	return extrapolateUnset, errf(ErrConfig, "unknown extrapolation mode %q", s)
}

// errf wraps one of the sentinel errors with formatted context.
func errf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
