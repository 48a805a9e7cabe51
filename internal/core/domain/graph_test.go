package domain_test

import (
	"errors"
	"strings"
	"testing"

	"go.trai.ch/patchwork/internal/core/domain"
	"go.trai.ch/zerr"
)

func pkg(name string, deps ...string) domain.Package {
	r := &domain.Recipe{Name: domain.NewInternedString(name)}
	for _, dep := range deps {
		r.Dependencies = append(r.Dependencies, domain.DependencyRef{
			Name: domain.NewInternedString(dep),
			Path: domain.NewInternedString("../" + dep),
		})
	}
	return domain.Package{Name: r.Name, Recipe: r}
}

func TestGraphValidate_TopologicalOrder(t *testing.T) {
	g := domain.NewGraph()
	for _, p := range []domain.Package{
		pkg("app", "lib", "util"),
		pkg("lib", "util"),
		pkg("util"),
	} {
		if err := g.AddPackage(p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pos := make(map[string]int)
	i := 0
	for p := range g.Walk() {
		pos[p.Name.String()] = i
		i++
	}

	if pos["util"] > pos["lib"] || pos["lib"] > pos["app"] {
		t.Errorf("expected dependencies before dependents, got positions %v", pos)
	}
}

func TestGraphValidate_CycleError(t *testing.T) {
	g := domain.NewGraph()
	_ = g.AddPackage(pkg("a", "b"))
	_ = g.AddPackage(pkg("b", "a"))

	err := g.Validate()
	if !errors.Is(err, domain.ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}

	var zErr *zerr.Error
	if !errors.As(err, &zErr) {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	cycle, ok := zErr.Metadata()["cycle"].(string)
	if !ok || !strings.Contains(cycle, "->") {
		t.Errorf("expected cycle path metadata, got %v", zErr.Metadata()["cycle"])
	}
}

func TestGraphValidate_MissingDependency(t *testing.T) {
	g := domain.NewGraph()
	_ = g.AddPackage(pkg("app", "ghost"))

	err := g.Validate()
	if !errors.Is(err, domain.ErrMissingDependency) {
		t.Fatalf("expected ErrMissingDependency, got %v", err)
	}
}

func TestGraphValidate_IgnoresGitPinnedDependencies(t *testing.T) {
	g := domain.NewGraph()

	r := &domain.Recipe{Name: domain.NewInternedString("app")}
	r.Dependencies = append(r.Dependencies, domain.DependencyRef{
		Name: domain.NewInternedString("serde"),
	})
	_ = g.AddPackage(domain.Package{Name: r.Name, Recipe: r})

	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected error for externally pinned dependency: %v", err)
	}
}

func TestGraphAddPackage_Duplicate(t *testing.T) {
	g := domain.NewGraph()
	if err := g.AddPackage(pkg("app")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := g.AddPackage(pkg("app"))
	if !errors.Is(err, domain.ErrPackageAlreadyExists) {
		t.Fatalf("expected ErrPackageAlreadyExists, got %v", err)
	}
}

func TestGraphRoot(t *testing.T) {
	g := domain.NewGraph()
	_ = g.AddPackage(pkg("app"))
	g.SetRoot(domain.NewInternedString("app"))

	root, ok := g.Root()
	if !ok || root.Name.String() != "app" {
		t.Fatalf("expected root app, got %v (ok=%v)", root.Name.String(), ok)
	}
}
