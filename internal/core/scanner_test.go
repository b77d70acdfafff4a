package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// createTestProject creates a project with the given files, each holding
// a minimal umi config.
func createTestProject(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		p := filepath.Join(dir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("export default { routes: [] };\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLocateRouteConfig_TypeScript(t *testing.T) {
	dir := createTestProject(t, "config/config.ts")

	path, js, err := LocateRouteConfig(dir)
	if err != nil {
		t.Fatalf("LocateRouteConfig() error: %v", err)
	}
	if want := filepath.Join(dir, "config", "config.ts"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if js {
		t.Error("js = true, want false")
	}
}

func TestLocateRouteConfig_JavaScript(t *testing.T) {
	dir := createTestProject(t, "config/config.js")

	path, js, err := LocateRouteConfig(dir)
	if err != nil {
		t.Fatalf("LocateRouteConfig() error: %v", err)
	}
	if want := filepath.Join(dir, "config", "config.js"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if !js {
		t.Error("js = false, want true")
	}
}

func TestLocateRouteConfig_PrefersTypeScript(t *testing.T) {
	dir := createTestProject(t, "config/config.ts", "config/config.js")

	path, js, err := LocateRouteConfig(dir)
	if err != nil {
		t.Fatalf("LocateRouteConfig() error: %v", err)
	}
	if filepath.Base(path) != "config.ts" || js {
		t.Errorf("LocateRouteConfig() = %q, %v; want config.ts, false", path, js)
	}
}

func TestLocateRouteConfig_NotFound(t *testing.T) {
	dir := createTestProject(t, ".umirc.ts", "src/config.ts")

	_, _, err := LocateRouteConfig(dir)
	if !errors.Is(err, ErrRouteConfigNotFound) {
		t.Errorf("err = %v, want ErrRouteConfigNotFound", err)
	}
}

func TestLocateRouteConfig_DirectoryIsNotConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config", "config.ts"), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, _, err := LocateRouteConfig(dir); !errors.Is(err, ErrRouteConfigNotFound) {
		t.Errorf("err = %v, want ErrRouteConfigNotFound", err)
	}
}
