package core

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"

	"github.com/barysiuk/procreate/internal/core/route"
	"github.com/barysiuk/procreate/internal/testutil"
)

const testConfigJS = `export default {
  hash: true,
  routes: [
    { path: '/', component: '../layouts/BasicLayout', routes: [] },
  ],
};
`

func testRouteTree() route.Tree {
	return route.Tree{Routes: []route.Node{
		{Path: "/", Component: "../layouts/BasicLayout", Routes: []route.Node{
			{Path: "/", Redirect: "/welcome"},
			{Path: "/welcome", Name: "welcome", Component: "./Welcome"},
			{Path: "/dashboard/analysis", Name: "analysis", Component: "./DashboardAnalysis"},
			{Path: "/form/basic-form", Name: "basic-form", Component: "./FormBasicForm"},
		}},
		{Component: route.NotFoundComponent},
	}}
}

func newTestOrchestrator(t *testing.T, runner Runner, blocks ...string) *Orchestrator {
	t.Helper()
	logger := testutil.NewTestLogger()

	client := NewCatalogClient(logger, DefaultBlockRepo, DefaultBlockRef)
	mock := httpmock.NewMockTransport()
	client.httpClient.Transport = mock
	tree := make([]map[string]any, len(blocks))
	for i, b := range blocks {
		tree[i] = map[string]any{"path": b, "type": "tree"}
	}
	responder, err := httpmock.NewJsonResponder(http.StatusOK, map[string]any{"sha": "abc", "tree": tree})
	if err != nil {
		t.Fatal(err)
	}
	mock.RegisterResponder(http.MethodGet, testTreeURL, responder)

	installer := NewBlockInstaller(logger, runner, client, DefaultBlockTool)
	deps := NewDependencyInstaller(logger, runner, NewRegistryResolver(logger, runner, nil, testRegistry))
	return NewOrchestrator(logger, client, installer, deps)
}

func writeTestConfig(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "config", name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestOrchestrator_FetchBlocks_EmptyCatalog(t *testing.T) {
	projectDir := writeTestConfig(t, "config.js", testConfigJS)
	runner := &fakeRunner{}
	o := newTestOrchestrator(t, runner)

	result, err := o.FetchBlocks(context.Background(), FetchBlocksOptions{
		ProjectDir: projectDir,
		Routes:     testRouteTree(),
	})
	if err != nil {
		t.Fatalf("FetchBlocks() error: %v", err)
	}

	configPath := filepath.Join(projectDir, "config", "config.js")
	if result.ConfigPath != configPath || result.RoutesPath != configPath {
		t.Errorf("ConfigPath = %q, RoutesPath = %q, want %q", result.ConfigPath, result.RoutesPath, configPath)
	}
	if !result.JS {
		t.Error("JS = false, want true for config.js")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	src := string(data)
	for _, want := range []string{"hash: true", "redirect: '/welcome'", "component: '404'"} {
		if !strings.Contains(src, want) {
			t.Errorf("config does not contain %q:\n%s", want, src)
		}
	}
	if strings.Contains(src, "./Welcome") {
		t.Errorf("config still contains a content route:\n%s", src)
	}

	if len(result.Install.Installed) != 0 {
		t.Errorf("Installed = %v, want none", result.Install.Installed)
	}
	wantSkipped := []string{"/", "/welcome", "/dashboard/analysis", "/form/basic-form"}
	if !reflect.DeepEqual(result.Install.Skipped, wantSkipped) {
		t.Errorf("Skipped = %v, want %v", result.Install.Skipped, wantSkipped)
	}

	calls := runner.Calls()
	if len(calls) != 1 {
		t.Fatalf("dependencies should be installed exactly once, got %d calls: %v", len(calls), calls)
	}
	wantDeps := []string{"npm", "install", "--registry=" + testRegistry}
	if calls[0].String() != strings.Join(wantDeps, " ") {
		t.Errorf("call = %q, want %q", calls[0].String(), strings.Join(wantDeps, " "))
	}
	if !reflect.DeepEqual(result.DependencyCommand, wantDeps) {
		t.Errorf("DependencyCommand = %v, want %v", result.DependencyCommand, wantDeps)
	}
}

func TestOrchestrator_FetchBlocks_InstallsBlocks(t *testing.T) {
	configTS := strings.NewReplacer("export default {", "export default defineConfig({", "};", "});").Replace(testConfigJS)
	projectDir := writeTestConfig(t, "config.ts", configTS)
	runner := &fakeRunner{}
	o := newTestOrchestrator(t, runner, "DashboardAnalysis", "FormBasicForm", "_scripts")

	result, err := o.FetchBlocks(context.Background(), FetchBlocksOptions{
		ProjectDir: projectDir,
		Branch:     "v5",
		Routes:     testRouteTree(),
	})
	if err != nil {
		t.Fatalf("FetchBlocks() error: %v", err)
	}
	if result.JS {
		t.Error("JS = true, want false for config.ts")
	}

	var commands []string
	for _, c := range runner.Calls() {
		commands = append(commands, c.String())
	}
	want := []string{
		"umi block add " + blockURL("DashboardAnalysis") + " --path=/dashboard/analysis --skip-dependencies --branch=v5",
		"umi block add " + blockURL("FormBasicForm") + " --path=/form/basic-form --skip-dependencies --branch=v5",
		"npm install --registry=" + testRegistry,
	}
	if !reflect.DeepEqual(commands, want) {
		t.Errorf("commands = %v, want %v", commands, want)
	}
	if len(result.Install.Installed) != 2 || result.Install.Remaining != 0 {
		t.Errorf("report = %+v, want 2 installed and 0 remaining", result.Install)
	}
}

func TestOrchestrator_FetchBlocks_FailureSkipsDependencies(t *testing.T) {
	projectDir := writeTestConfig(t, "config.js", testConfigJS)
	runner := &fakeRunner{
		Handle: func(call fakeCall) (RunResult, error) {
			if call.Name == "umi" {
				return RunResult{ExitCode: 2}, nil
			}
			return RunResult{}, nil
		},
	}
	o := newTestOrchestrator(t, runner, "DashboardAnalysis", "FormBasicForm")

	result, err := o.FetchBlocks(context.Background(), FetchBlocksOptions{
		ProjectDir: projectDir,
		Routes:     testRouteTree(),
	})

	var installErr *BlockInstallError
	if !errors.As(err, &installErr) {
		t.Fatalf("err = %v, want *BlockInstallError", err)
	}
	if installErr.Route != "/dashboard/analysis" {
		t.Errorf("error route = %q, want /dashboard/analysis", installErr.Route)
	}
	if result == nil {
		t.Fatal("FetchBlocks() should return the partial result")
	}
	if result.DependencyCommand != nil {
		t.Errorf("DependencyCommand = %v, want nil", result.DependencyCommand)
	}
	if n := len(runner.Calls()); n != 1 {
		t.Errorf("expected 1 invocation, got %d", n)
	}
}

func TestOrchestrator_FetchBlocks_NoConfig(t *testing.T) {
	projectDir := t.TempDir()
	runner := &fakeRunner{}
	o := newTestOrchestrator(t, runner)

	result, err := o.FetchBlocks(context.Background(), FetchBlocksOptions{
		ProjectDir: projectDir,
		Routes:     testRouteTree(),
	})

	if !errors.Is(err, ErrRouteConfigNotFound) {
		t.Errorf("err = %v, want ErrRouteConfigNotFound", err)
	}
	if result != nil {
		t.Errorf("result = %+v, want nil", result)
	}
	if n := len(runner.Calls()); n != 0 {
		t.Errorf("expected no invocation, got %d", n)
	}

	entries, err := os.ReadDir(projectDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("nothing should be written without a config, found %v", entries)
	}
}

func TestOrchestrator_FetchBlocks_SkipExcluded(t *testing.T) {
	projectDir := writeTestConfig(t, "config.js", testConfigJS)
	o := newTestOrchestrator(t, &fakeRunner{})

	result, err := o.FetchBlocks(context.Background(), FetchBlocksOptions{
		ProjectDir:   projectDir,
		Routes:       testRouteTree(),
		SkipExcluded: true,
	})
	if err != nil {
		t.Fatalf("FetchBlocks() error: %v", err)
	}
	if slices.Contains(result.Install.Skipped, "/") {
		t.Errorf("Skipped = %v, want / left out", result.Install.Skipped)
	}
}
