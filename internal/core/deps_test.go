package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/barysiuk/procreate/internal/testutil"
)

const testRegistry = "https://registry.npmmirror.com/"

func newTestDependencyInstaller(runner Runner) *DependencyInstaller {
	logger := testutil.NewTestLogger()
	return NewDependencyInstaller(logger, runner, NewRegistryResolver(logger, runner, nil, testRegistry))
}

func TestDetectPackageManager(t *testing.T) {
	dir := t.TempDir()
	if got := DetectPackageManager(dir); got != PackageManagerNpm {
		t.Errorf("DetectPackageManager() = %q, want npm", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "yarn.lock"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if got := DetectPackageManager(dir); got != PackageManagerYarn {
		t.Errorf("DetectPackageManager() with yarn.lock = %q, want yarn", got)
	}
}

func TestInstallCommand(t *testing.T) {
	tests := []struct {
		pm   PackageManager
		want []string
	}{
		{PackageManagerNpm, []string{"npm", "install", "--registry=" + testRegistry}},
		{PackageManagerYarn, []string{"yarn", "--registry=" + testRegistry}},
	}
	for _, tt := range tests {
		if got := InstallCommand(tt.pm, testRegistry); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("InstallCommand(%q) = %v, want %v", tt.pm, got, tt.want)
		}
	}
}

func TestDependencyInstaller_Install(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "yarn.lock"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{}
	progress := &recordingProgress{}
	argv, err := newTestDependencyInstaller(runner).WithProgress(progress).Install(context.Background(), dir)
	if err != nil {
		t.Fatalf("Install() error: %v", err)
	}

	if want := []string{"yarn", "--registry=" + testRegistry}; !reflect.DeepEqual(argv, want) {
		t.Errorf("Install() = %v, want %v", argv, want)
	}

	calls := runner.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 invocation, got %d: %v", len(calls), calls)
	}
	if want := "yarn --registry=" + testRegistry; calls[0].String() != want {
		t.Errorf("call = %q, want %q", calls[0].String(), want)
	}
	if calls[0].Dir != dir {
		t.Errorf("call dir = %q, want %q", calls[0].Dir, dir)
	}

	wantEvents := []string{
		"start:install dependencies: yarn --registry=" + testRegistry,
		"succeed:install dependencies: yarn --registry=" + testRegistry,
	}
	if !reflect.DeepEqual(progress.events, wantEvents) {
		t.Errorf("progress events = %v, want %v", progress.events, wantEvents)
	}
}

func TestDependencyInstaller_Failure(t *testing.T) {
	runner := &fakeRunner{
		Handle: func(fakeCall) (RunResult, error) {
			return RunResult{ExitCode: 1, Output: "ERR! network\n"}, nil
		},
	}

	_, err := newTestDependencyInstaller(runner).Install(context.Background(), t.TempDir())

	var depErr *DependencyInstallError
	if !errors.As(err, &depErr) {
		t.Fatalf("err = %v, want *DependencyInstallError", err)
	}
	if depErr.ExitCode != 1 || depErr.Output != "ERR! network" {
		t.Errorf("error exit = %d output = %q", depErr.ExitCode, depErr.Output)
	}
	if want := "npm install --registry=" + testRegistry; depErr.Command != want {
		t.Errorf("error command = %q, want %q", depErr.Command, want)
	}
	if n := len(runner.Calls()); n != 1 {
		t.Errorf("dependency install should not be retried, got %d invocations", n)
	}
}
