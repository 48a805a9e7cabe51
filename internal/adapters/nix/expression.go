package nix

import (
	"fmt"
	"strings"

	"go.trai.ch/patchwork/internal/core/domain"
)

// GenerateDerivation renders a build plan as a Nix mkDerivation
// expression. Inputs keep their declaration order so generated
// expressions are stable across runs.
func GenerateDerivation(plan *domain.BuildPlan) string {
	var b strings.Builder

	b.WriteString("let pkgs = import <nixpkgs> {}; in\n")
	b.WriteString("pkgs.stdenv.mkDerivation {\n")
	fmt.Fprintf(&b, "  name = %q;\n", plan.Derivation.String())
	writeInputList(&b, "nativeBuildInputs", plan.RequestsForRole(domain.RoleNative))
	writeInputList(&b, "buildInputs", plan.RequestsForRole(domain.RoleRuntime))
	b.WriteString("}\n")

	return b.String()
}

func writeInputList(b *strings.Builder, attr string, ids []string) {
	if len(ids) == 0 {
		fmt.Fprintf(b, "  %s = [ ];\n", attr)
		return
	}

	// Identifiers may carry an "@version" constraint; the expression
	// refers to packages by bare attribute name.
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = bareName(id)
	}
	fmt.Fprintf(b, "  %s = with pkgs; [ %s ];\n", attr, strings.Join(names, " "))
}

func bareName(id string) string {
	if i := strings.IndexByte(id, '@'); i >= 0 {
		return id[:i]
	}
	return id
}
