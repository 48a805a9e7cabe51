package domain

import (
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// Package is one workspace member: a recipe together with the directory
// it was loaded from.
type Package struct {
	// Name is the recipe name.
	Name InternedString

	// Dir is the absolute directory holding the package's recipe file.
	Dir InternedString

	// Recipe is the loaded descriptor.
	Recipe *Recipe
}

// Graph is the workspace dependency graph of packages.
type Graph struct {
	packages map[InternedString]Package
	order    []InternedString
	root     InternedString
}

// NewGraph creates an empty workspace graph.
func NewGraph() *Graph {
	return &Graph{
		packages: make(map[InternedString]Package),
	}
}

// AddPackage adds a package to the graph.
// It returns an error if a package with the same name already exists.
func (g *Graph) AddPackage(p Package) error {
	if _, exists := g.packages[p.Name]; exists {
		return zerr.With(ErrPackageAlreadyExists, "package", p.Name.String())
	}
	g.packages[p.Name] = p
	return nil
}

// SetRoot marks the workspace root package.
func (g *Graph) SetRoot(name InternedString) {
	g.root = name
}

// Root returns the workspace root package.
func (g *Graph) Root() (Package, bool) {
	p, ok := g.packages[g.root]
	return p, ok
}

// Package returns the package with the given name.
func (g *Graph) Package(name InternedString) (Package, bool) {
	p, ok := g.packages[name]
	return p, ok
}

// PackageCount returns the number of packages in the graph.
func (g *Graph) PackageCount() int {
	return len(g.packages)
}

// Validate checks that every declared dependency exists and that the
// graph is acyclic. On success it records a deterministic topological
// order: dependencies always precede their dependents.
func (g *Graph) Validate() error {
	g.order = make([]InternedString, 0, len(g.packages))
	visited := make(map[InternedString]int, len(g.packages)) // 0 unvisited, 1 visiting, 2 done
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		pkg, exists := g.packages[u]
		if !exists {
			return zerr.With(ErrMissingDependency, "dependency", u.String())
		}

		for _, dep := range pkg.Recipe.Dependencies {
			// Git-pinned dependencies live outside the workspace and
			// are not graph edges.
			if dep.Path.String() == "" {
				continue
			}
			switch visited[dep.Name] {
			case 1:
				return g.cycleError(path, dep.Name)
			case 0:
				if err := visit(dep.Name); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.order = append(g.order, u)
		return nil
	}

	// Sorted roots keep the topological order stable across runs,
	// which keeps plan output and vendor logs deterministic.
	names := make([]string, 0, len(g.packages))
	for name := range g.packages {
		names = append(names, name.String())
	}
	slices.Sort(names)

	for _, name := range names {
		interned := NewInternedString(name)
		if visited[interned] == 0 {
			if err := visit(interned); err != nil {
				return err
			}
		}
	}

	return nil
}

func (g *Graph) cycleError(path []InternedString, dep InternedString) error {
	start := 0
	for i, node := range path {
		if node == dep {
			start = i
			break
		}
	}
	cycle := ""
	for i := start; i < len(path); i++ {
		cycle += path[i].String() + " -> "
	}
	cycle += dep.String()
	return zerr.With(ErrCycleDetected, "cycle", cycle)
}

// Walk yields packages in topological order, dependencies first.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Package] {
	return func(yield func(Package) bool) {
		for _, name := range g.order {
			if !yield(g.packages[name]) {
				return
			}
		}
	}
}
