package domain

// InputRole distinguishes build-time tools from linked libraries.
type InputRole string

const (
	// RoleNative marks a tool needed only while building.
	RoleNative InputRole = "native"

	// RoleRuntime marks a library needed to build and to link against.
	RoleRuntime InputRole = "runtime"
)

// DependencyRequest is a single input the build plan asks the catalog for.
type DependencyRequest struct {
	// Identifier is the catalog name, optionally "name@version".
	Identifier InternedString

	// Role records which input list the request came from.
	Role InputRole
}

// Name returns the bare package name of the request, without any
// "@version" suffix.
func (d DependencyRequest) Name() string {
	id := d.Identifier.String()
	for i := 0; i < len(id); i++ {
		if id[i] == '@' {
			return id[:i]
		}
	}
	return id
}

// VersionConstraint returns the "@version" suffix of the request,
// or "latest" when none was declared.
func (d DependencyRequest) VersionConstraint() string {
	id := d.Identifier.String()
	for i := 0; i < len(id); i++ {
		if id[i] == '@' {
			return id[i+1:]
		}
	}
	return "latest"
}

// BuildPlan is the evaluated form of a recipe: the derivation label and
// the exact set of dependency requests, in declaration order, together
// with their catalog resolutions.
type BuildPlan struct {
	// Derivation is the output label, taken from the recipe name.
	Derivation InternedString

	// Requests holds every declared input exactly once, native build
	// inputs first, preserving declaration order within each list.
	Requests []DependencyRequest

	// Resolved maps a request identifier to its catalog resolution.
	Resolved map[string]ResolvedPackage
}

// RequestsForRole returns the identifiers of all requests with the given role,
// preserving declaration order.
func (p *BuildPlan) RequestsForRole(role InputRole) []string {
	var ids []string
	for _, req := range p.Requests {
		if req.Role == role {
			ids = append(ids, req.Identifier.String())
		}
	}
	return ids
}
