package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"go.trai.ch/patchwork/internal/adapters/fs"
	"go.trai.ch/patchwork/internal/core/domain"
)

func planWith(name string, ids ...string) *domain.BuildPlan {
	plan := &domain.BuildPlan{Derivation: domain.NewInternedString(name)}
	for _, id := range ids {
		plan.Requests = append(plan.Requests, domain.DependencyRequest{
			Identifier: domain.NewInternedString(id),
			Role:       domain.RoleRuntime,
		})
	}
	return plan
}

func TestFingerprintPlan_Deterministic(t *testing.T) {
	h := fs.NewHasher()

	a := h.FingerprintPlan(planWith("cargo-patch", "curl", "libssh2", "openssl"))
	b := h.FingerprintPlan(planWith("cargo-patch", "curl", "libssh2", "openssl"))

	if a != b {
		t.Errorf("equal plans produced different fingerprints: %s vs %s", a, b)
	}
	if len(a) != 16 {
		t.Errorf("expected 16 hex chars, got %q", a)
	}
}

func TestFingerprintPlan_SensitiveToOrder(t *testing.T) {
	h := fs.NewHasher()

	a := h.FingerprintPlan(planWith("demo", "curl", "openssl"))
	b := h.FingerprintPlan(planWith("demo", "openssl", "curl"))

	if a == b {
		t.Error("reordered inputs produced identical fingerprints")
	}
}

func TestFingerprintPlan_SensitiveToRole(t *testing.T) {
	h := fs.NewHasher()

	runtime := planWith("demo", "cmake")
	native := planWith("demo", "cmake")
	native.Requests[0].Role = domain.RoleNative

	if h.FingerprintPlan(runtime) == h.FingerprintPlan(native) {
		t.Error("role change did not affect fingerprint")
	}
}

func TestComputeFileHash(t *testing.T) {
	h := fs.NewHasher()
	dir := t.TempDir()

	pathA := filepath.Join(dir, "a.txt")
	pathB := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(pathA, []byte("content"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := os.WriteFile(pathB, []byte("content"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	hashA, err := h.ComputeFileHash(pathA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hashB, err := h.ComputeFileHash(pathB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hashA != hashB {
		t.Error("identical content hashed differently")
	}

	if err := os.WriteFile(pathB, []byte("changed"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	hashB, err = h.ComputeFileHash(pathB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hashA == hashB {
		t.Error("different content hashed identically")
	}
}

func TestComputeTreeHash(t *testing.T) {
	h := fs.NewHasher()

	writeTree := func(t *testing.T, content string) string {
		t.Helper()
		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "recipe.yaml"), []byte("name: demo\n"), 0o600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "src", "main.c"), []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		return dir
	}

	a, err := h.ComputeTreeHash(writeTree(t, "int main() {}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := h.ComputeTreeHash(writeTree(t, "int main() {}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Error("identical trees hashed differently")
	}

	c, err := h.ComputeTreeHash(writeTree(t, "int main() { return 1; }"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == c {
		t.Error("different trees hashed identically")
	}
}
