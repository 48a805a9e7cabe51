package planner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.trai.ch/patchwork/internal/adapters/fs"
	"go.trai.ch/patchwork/internal/adapters/lock"
	"go.trai.ch/patchwork/internal/adapters/telemetry"
	"go.trai.ch/patchwork/internal/core/domain"
	"go.trai.ch/patchwork/internal/core/ports/mocks"
	"go.trai.ch/patchwork/internal/engine/planner"
	"go.uber.org/mock/gomock"
)

func interned(strs ...string) []domain.InternedString {
	res := make([]domain.InternedString, len(strs))
	for i, s := range strs {
		res[i] = domain.NewInternedString(s)
	}
	return res
}

func resolved(name, version string) domain.ResolvedPackage {
	return domain.ResolvedPackage{
		Name:    domain.NewInternedString(name),
		Version: domain.NewInternedString(version),
		Systems: map[string]domain.NixSource{
			"x86_64-linux": {
				Owner:    domain.NewInternedString("NixOS"),
				Repo:     domain.NewInternedString("nixpkgs"),
				Rev:      domain.NewInternedString("9d29cd266cebf80234c98dd0b87256b6be0af44e"),
				AttrPath: domain.NewInternedString(name),
			},
		},
	}
}

type fixture struct {
	resolver  *mocks.MockCatalogResolver
	locks     *mocks.MockLockStoreOpener
	lockStore *mocks.MockLockStore
	planner   *planner.Planner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		resolver:  mocks.NewMockCatalogResolver(ctrl),
		locks:     mocks.NewMockLockStoreOpener(ctrl),
		lockStore: mocks.NewMockLockStore(ctrl),
	}
	f.planner = planner.New(f.resolver, f.locks, fs.NewHasher(), telemetry.NewNoop())
	return f
}

func TestEval(t *testing.T) {
	f := newFixture(t)

	recipe := &domain.Recipe{
		Name:              domain.NewInternedString("cargo-patch"),
		NativeBuildInputs: interned("cmake", "pkgconfig"),
		BuildInputs:       interned("curl", "libssh2", "openssl"),
	}

	for _, name := range []string{"cmake", "pkgconfig", "curl", "libssh2", "openssl"} {
		f.resolver.EXPECT().
			Resolve(gomock.Any(), name, "latest").
			Return(resolved(name, "1.0.0"), nil)
	}

	plan, err := f.planner.Eval(context.Background(), recipe, planner.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.Derivation.String() != "cargo-patch" {
		t.Errorf("expected derivation cargo-patch, got %q", plan.Derivation.String())
	}

	wantOrder := []string{"cmake", "pkgconfig", "curl", "libssh2", "openssl"}
	if len(plan.Requests) != len(wantOrder) {
		t.Fatalf("expected %d requests, got %d", len(wantOrder), len(plan.Requests))
	}
	for i, want := range wantOrder {
		if got := plan.Requests[i].Identifier.String(); got != want {
			t.Errorf("request %d: expected %q, got %q", i, want, got)
		}
	}
	if plan.Requests[0].Role != domain.RoleNative || plan.Requests[2].Role != domain.RoleRuntime {
		t.Errorf("unexpected roles: %+v", plan.Requests)
	}

	for _, name := range wantOrder {
		if _, ok := plan.Resolved[name]; !ok {
			t.Errorf("missing resolution for %q", name)
		}
	}
}

func TestEval_InvalidRecipe(t *testing.T) {
	f := newFixture(t)

	_, err := f.planner.Eval(context.Background(), &domain.Recipe{}, planner.Options{})
	if !errors.Is(err, domain.ErrEmptyRecipeName) {
		t.Fatalf("expected ErrEmptyRecipeName, got %v", err)
	}
}

func TestEval_SharedInputResolvedOnce(t *testing.T) {
	f := newFixture(t)

	recipe := &domain.Recipe{
		Name:              domain.NewInternedString("demo"),
		NativeBuildInputs: interned("openssl"),
		BuildInputs:       interned("openssl"),
	}

	f.resolver.EXPECT().
		Resolve(gomock.Any(), "openssl", "latest").
		Return(resolved("openssl", "3.0.13"), nil).
		Times(1)

	plan, err := f.planner.Eval(context.Background(), recipe, planner.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Requests) != 2 {
		t.Errorf("expected both declarations in the request list, got %d", len(plan.Requests))
	}
	if len(plan.Resolved) != 1 {
		t.Errorf("expected a single resolution, got %d", len(plan.Resolved))
	}
}

func TestEval_VersionConstraint(t *testing.T) {
	f := newFixture(t)

	recipe := &domain.Recipe{
		Name:        domain.NewInternedString("pinned"),
		BuildInputs: interned("openssl@3.0.13"),
	}

	f.resolver.EXPECT().
		Resolve(gomock.Any(), "openssl", "3.0.13").
		Return(resolved("openssl", "3.0.13"), nil)

	plan, err := f.planner.Eval(context.Background(), recipe, planner.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := plan.Resolved["openssl@3.0.13"]; !ok {
		t.Errorf("resolution keyed incorrectly: %v", plan.Resolved)
	}
}

func TestEval_Locked(t *testing.T) {
	f := newFixture(t)

	recipe := &domain.Recipe{
		Name:        domain.NewInternedString("demo"),
		BuildInputs: interned("curl"),
	}

	pinned := resolved("curl", "8.6.0")
	f.locks.EXPECT().Open("/ws").Return(f.lockStore, nil)
	f.lockStore.EXPECT().Get("curl").Return(&pinned, nil)

	plan, err := f.planner.Eval(context.Background(), recipe, planner.Options{Locked: true, Dir: "/ws"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pkg, ok := plan.Resolved["curl"]
	if !ok || pkg.Version.String() != "8.6.0" {
		t.Errorf("expected pinned resolution, got %+v", plan.Resolved)
	}
}

func TestEval_LockedUnpinned(t *testing.T) {
	f := newFixture(t)

	recipe := &domain.Recipe{
		Name:        domain.NewInternedString("demo"),
		BuildInputs: interned("curl"),
	}

	f.locks.EXPECT().Open("/ws").Return(f.lockStore, nil)
	f.lockStore.EXPECT().Get("curl").Return(nil, nil)

	_, err := f.planner.Eval(context.Background(), recipe, planner.Options{Locked: true, Dir: "/ws"})
	if !errors.Is(err, domain.ErrUnpinnedInput) {
		t.Fatalf("expected ErrUnpinnedInput, got %v", err)
	}
}

func TestEval_ResolverError(t *testing.T) {
	f := newFixture(t)

	recipe := &domain.Recipe{
		Name:        domain.NewInternedString("demo"),
		BuildInputs: interned("no-such-package"),
	}

	f.resolver.EXPECT().
		Resolve(gomock.Any(), "no-such-package", "latest").
		Return(domain.ResolvedPackage{}, domain.ErrUnknownPackage)

	_, err := f.planner.Eval(context.Background(), recipe, planner.Options{})
	if !errors.Is(err, domain.ErrUnknownPackage) {
		t.Fatalf("expected ErrUnknownPackage, got %v", err)
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	f := newFixture(t)

	recipe := &domain.Recipe{
		Name:              domain.NewInternedString("cargo-patch"),
		NativeBuildInputs: interned("cmake", "pkgconfig"),
		BuildInputs:       interned("curl", "libssh2", "openssl"),
	}

	f.resolver.EXPECT().
		Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(resolved("any", "1.0.0"), nil).
		AnyTimes()

	first, err := f.planner.Eval(context.Background(), recipe, planner.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := f.planner.Eval(context.Background(), recipe, planner.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.planner.Fingerprint(first) != f.planner.Fingerprint(second) {
		t.Error("equal recipes produced different fingerprints")
	}
}

func TestLock_PinsEveryInput(t *testing.T) {
	f := newFixture(t)

	recipe := &domain.Recipe{
		Name:        domain.NewInternedString("demo"),
		BuildInputs: interned("curl", "openssl"),
	}

	f.resolver.EXPECT().Resolve(gomock.Any(), "curl", "latest").Return(resolved("curl", "8.6.0"), nil)
	f.resolver.EXPECT().Resolve(gomock.Any(), "openssl", "latest").Return(resolved("openssl", "3.0.13"), nil)

	f.locks.EXPECT().Open("/ws").Return(f.lockStore, nil)

	pinnedNames := make(map[string]bool)
	f.lockStore.EXPECT().Put(gomock.Any()).DoAndReturn(func(pkg domain.ResolvedPackage) error {
		pinnedNames[pkg.Name.String()] = true
		return nil
	}).Times(2)

	snapshot := domain.NewLockfile()
	snapshot.Pin(resolved("curl", "8.6.0"))
	snapshot.Pin(resolved("openssl", "3.0.13"))
	f.lockStore.EXPECT().All().Return(snapshot, nil)

	lf, err := f.planner.Lock(context.Background(), recipe, "/ws")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !pinnedNames["curl"] || !pinnedNames["openssl"] {
		t.Errorf("expected both inputs pinned, got %v", pinnedNames)
	}
	if len(lf.Packages) != 2 {
		t.Errorf("expected snapshot with 2 pins, got %d", len(lf.Packages))
	}
}

func TestLockThenLockedEval_UsesWorkspaceLockfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockCatalogResolver(ctrl)

	root := t.TempDir()
	p := planner.New(resolver, lock.NewOpener(), fs.NewHasher(), telemetry.NewNoop())

	recipe := &domain.Recipe{
		Name:        domain.NewInternedString("demo"),
		BuildInputs: interned("curl"),
	}

	resolver.EXPECT().Resolve(gomock.Any(), "curl", "latest").Return(resolved("curl", "8.6.0"), nil)
	if _, err := p.Lock(context.Background(), recipe, root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The lockfile sits next to the root recipe.
	if _, err := os.Stat(filepath.Join(root, lock.DefaultFilename)); err != nil {
		t.Fatalf("lockfile missing from workspace root: %v", err)
	}

	// Locked evaluation resolves from the file alone; the resolver
	// mock would fail the test if it were queried again.
	plan, err := p.Eval(context.Background(), recipe, planner.Options{Locked: true, Dir: root})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Resolved["curl"].Version.String() != "8.6.0" {
		t.Errorf("expected pinned resolution, got %+v", plan.Resolved)
	}
}
