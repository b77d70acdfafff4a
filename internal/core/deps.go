package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// PackageManager is the tool that installs a project's dependencies.
type PackageManager string

const (
	PackageManagerNpm  PackageManager = "npm"
	PackageManagerYarn PackageManager = "yarn"
)

// DetectPackageManager returns yarn when projectDir has a yarn.lock and npm otherwise.
func DetectPackageManager(projectDir string) PackageManager {
	if fileExists(filepath.Join(projectDir, "yarn.lock")) {
		return PackageManagerYarn
	}
	return PackageManagerNpm
}

// InstallCommand returns the command line installing dependencies from registry.
func InstallCommand(pm PackageManager, registry string) []string {
	flag := "--registry=" + registry
	if pm == PackageManagerYarn {
		return []string{"yarn", flag}
	}
	return []string{"npm", "install", flag}
}

// DependencyInstallError is returned when the dependency install fails.
type DependencyInstallError struct {
	Command  string
	ExitCode int
	Output   string
	Err      error // start failure, nil when the tool exited non-zero
}

func (e *DependencyInstallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("installing dependencies: %s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("installing dependencies: %s exited with status %d", e.Command, e.ExitCode)
}

func (e *DependencyInstallError) Unwrap() error { return e.Err }

// DependencyInstaller installs a project's dependencies once all blocks
// are in place.
type DependencyInstaller struct {
	logger   *zerolog.Logger
	runner   Runner
	registry *RegistryResolver
	progress Progress
}

// NewDependencyInstaller creates a dependency installer.
func NewDependencyInstaller(logger *zerolog.Logger, runner Runner, registry *RegistryResolver) *DependencyInstaller {
	return &DependencyInstaller{
		logger:   logger,
		runner:   runner,
		registry: registry,
		progress: nopProgress{},
	}
}

// WithProgress sets the progress reporter.
func (d *DependencyInstaller) WithProgress(p Progress) *DependencyInstaller {
	if p != nil {
		d.progress = p
	}
	return d
}

// Install runs the package manager of projectDir and returns the command
// line it ran. It is not retried.
func (d *DependencyInstaller) Install(ctx context.Context, projectDir string) ([]string, error) {
	pm := DetectPackageManager(projectDir)
	argv := InstallCommand(pm, d.registry.Resolve(ctx, projectDir))
	command := strings.Join(argv, " ")

	label := "install dependencies: " + command
	d.progress.Start(label)
	d.logger.Debug().Str("cmd", command).Msg("Installing dependencies")

	res, err := d.runner.Run(ctx, projectDir, argv[0], argv[1:]...)
	if err != nil || res.ExitCode != 0 {
		d.progress.Fail(label)
		return argv, &DependencyInstallError{
			Command:  command,
			ExitCode: res.ExitCode,
			Output:   strings.TrimSpace(res.Output),
			Err:      err,
		}
	}

	d.progress.Succeed(label)
	return argv, nil
}
