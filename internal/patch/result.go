package patch

import "errors"

// Result is the outcome of one Apply call.
type Result int

const (
	Success Result = iota
	NoMatchFound
	RegistryNotReady
	ToolItemMissing
	BuildMenuMissing
	BuildableEntryMissing
	RequirementListMissing
	RequirementListEmpty
	TargetResourceMissing
)

var (
	ErrRegistryNotReady       = errors.New("content registry not ready")
	ErrToolItemMissing        = errors.New("tool item missing")
	ErrBuildMenuMissing       = errors.New("tool has no build menu")
	ErrBuildableEntryMissing  = errors.New("buildable entry missing from build menu")
	ErrRequirementListMissing = errors.New("requirement list missing")
	ErrRequirementListEmpty   = errors.New("requirement list empty")
	ErrTargetResourceMissing  = errors.New("target resource missing")
)

var failures = []struct {
	result Result
	err    error
}{
	{RegistryNotReady, ErrRegistryNotReady},
	{ToolItemMissing, ErrToolItemMissing},
	{BuildMenuMissing, ErrBuildMenuMissing},
	{BuildableEntryMissing, ErrBuildableEntryMissing},
	{RequirementListMissing, ErrRequirementListMissing},
	{RequirementListEmpty, ErrRequirementListEmpty},
	{TargetResourceMissing, ErrTargetResourceMissing},
}

func (r Result) String() string {
	switch r {
	case Success:
		return "Success"
	case NoMatchFound:
		return "NoMatchFound"
	case RegistryNotReady:
		return "RegistryNotReady"
	case ToolItemMissing:
		return "ToolItemMissing"
	case BuildMenuMissing:
		return "BuildMenuMissing"
	case BuildableEntryMissing:
		return "BuildableEntryMissing"
	case RequirementListMissing:
		return "RequirementListMissing"
	case RequirementListEmpty:
		return "RequirementListEmpty"
	case TargetResourceMissing:
		return "TargetResourceMissing"
	default:
		return "Unknown"
	}
}

// Failed reports whether r is one of the failure kinds.
// NoMatchFound is not a failure.
func (r Result) Failed() bool {
	return r.Err() != nil
}

// Err returns the sentinel error for a failure kind, nil otherwise.
func (r Result) Err() error {
	for _, f := range failures {
		if f.result == r {
			return f.err
		}
	}
	return nil
}

func resultOf(err error) Result {
	for _, f := range failures {
		if errors.Is(err, f.err) {
			return f.result
		}
	}
	return Success
}
