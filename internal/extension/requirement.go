package extension

// Requirement names a database extension that must be enabled before the
// features built on it (trigram search, combined B-tree/GIN indexes) can
// be used.
type Requirement struct {
	Name string
}

// RequirementsFromNames converts an ordered list of extension names into
// Requirements, preserving order. Enabling is commutative, so order only
// decides which requirement is reported first on failure.
func RequirementsFromNames(names []string) []Requirement {
	reqs := make([]Requirement, 0, len(names))

	for _, name := range names {
		reqs = append(reqs, Requirement{Name: name})
	}

	return reqs
}
