package fieldshape

// Options selects introspection behavior.
type Options struct {
	// UseDeclaredRequired marks a field required only when its own Required
	// flag is set. When false every retained field is required.
	UseDeclaredRequired bool
	// RemoveExcluded computes inherited exclusion metadata and drops the
	// excluded fields from the summary.
	RemoveExcluded bool
}

// DefaultOptions removes excluded fields and treats every retained field as
// required.
func DefaultOptions() Options {
	return Options{RemoveExcluded: true}
}

// UnknownPolicy controls how loading treats keys that are not declared.
type UnknownPolicy int

const (
	UnknownRaise   UnknownPolicy = iota // Reject unknown keys with an issue.
	UnknownExclude                      // Drop unknown keys.
	UnknownInclude                      // Keep unknown keys as-is.
)

func (p UnknownPolicy) String() string {
	switch p {
	case UnknownExclude:
		return "exclude"
	case UnknownInclude:
		return "include"
	default:
		return "raise"
	}
}

// ParseUnknownPolicy maps "raise", "exclude" and "include" to a policy.
func ParseUnknownPolicy(s string) (UnknownPolicy, bool) {
	switch s {
	case "raise", "":
		return UnknownRaise, true
	case "exclude":
		return UnknownExclude, true
	case "include":
		return UnknownInclude, true
	}
	return UnknownRaise, false
}
