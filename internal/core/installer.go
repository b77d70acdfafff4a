package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/barysiuk/procreate/internal/core/route"
)

// pagesDir is the project-relative directory blocks are installed into.
const pagesDir = "src/pages"

// Progress reports the state of a long-running step.
type Progress interface {
	Start(label string)
	Succeed(label string)
	Fail(label string)
}

type nopProgress struct{}

func (nopProgress) Start(string)   {}
func (nopProgress) Succeed(string) {}
func (nopProgress) Fail(string)    {}

// BlockInstaller materializes routes from the block registry by running the
// block tool once per matching route.
type BlockInstaller struct {
	logger   *zerolog.Logger
	runner   Runner
	client   *CatalogClient
	tool     []string
	progress Progress
	validate *validator.Validate
}

// NewBlockInstaller creates an installer that resolves block URLs with
// client and runs tool, a command line such as "umi" or "npx umi".
func NewBlockInstaller(logger *zerolog.Logger, runner Runner, client *CatalogClient, tool string) *BlockInstaller {
	fields := strings.Fields(tool)
	if len(fields) == 0 {
		fields = []string{DefaultBlockTool}
	}
	return &BlockInstaller{
		logger:   logger,
		runner:   runner,
		client:   client,
		tool:     fields,
		progress: nopProgress{},
		validate: validator.New(),
	}
}

// WithProgress sets the progress reporter.
func (b *BlockInstaller) WithProgress(p Progress) *BlockInstaller {
	if p != nil {
		b.progress = p
	}
	return b
}

// BlockInstallOptions configures an install run.
type BlockInstallOptions struct {
	Branch string // passed to the block tool; defaults to master
	JS     bool   // install the JavaScript variant of each block
}

// InstalledBlock records one block placed into the project.
type InstalledBlock struct {
	ID   string
	Path string
}

// InstallReport is the outcome of an install run.
type InstallReport struct {
	Installed []InstalledBlock
	Skipped   []string // route paths with no matching block
	Remaining int      // catalog entries left unused
}

// BlockInstallError is returned when the block tool fails for a route.
// The run stops at that route.
type BlockInstallError struct {
	Route    string
	ID       string
	Command  string
	ExitCode int
	Output   string
	Err      error // start failure, nil when the tool exited non-zero
}

func (e *BlockInstallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("installing block %s to %s: %v", e.ID, e.Route, e.Err)
	}
	return fmt.Sprintf("installing block %s to %s: %s exited with status %d", e.ID, e.Route, e.Command, e.ExitCode)
}

func (e *BlockInstallError) Unwrap() error { return e.Err }

type installTarget struct {
	ProjectDir string `validate:"required,dir"`
	Branch     string `validate:"required"`
}

// BlockAddArgs returns the block tool arguments that install blockURL at
// routePath without touching dependencies.
func BlockAddArgs(blockURL, routePath, branch string, skipModifyRoutes, js bool) []string {
	args := []string{
		"block", "add", blockURL,
		"--path=" + routePath,
		"--skip-dependencies",
		"--branch=" + branch,
	}
	if skipModifyRoutes {
		args = append(args, "--skip-modify-routes")
	}
	if js {
		args = append(args, "--js")
	}
	return args
}

// Install walks routes in order and installs the block of every route whose
// normalized path is still in catalog. Before each install the route's page
// directory is removed and the block is taken out of catalog, so two routes
// normalizing to the same identifier install it once.
//
// The first failing install stops the run and returns a *BlockInstallError
// together with the report so far. Blocks installed before the failure stay
// on disk.
func (b *BlockInstaller) Install(
	ctx context.Context,
	projectDir string,
	routes []route.Installable,
	catalog *Catalog,
	opts BlockInstallOptions,
) (*InstallReport, error) {
	if opts.Branch == "" {
		opts.Branch = DefaultBlockRef
	}
	if err := b.validate.Struct(installTarget{ProjectDir: projectDir, Branch: opts.Branch}); err != nil {
		return nil, fmt.Errorf("invalid install target: %w", err)
	}

	pages := filepath.Join(projectDir, filepath.FromSlash(pagesDir))
	report := &InstallReport{}

	for _, r := range routes {
		if r.Path == "" {
			continue
		}
		id := route.Normalize(r.Path)
		if !catalog.Match(id) {
			b.logger.Debug().Str("path", r.Path).Str("block", id).Msg("No block for route")
			report.Skipped = append(report.Skipped, r.Path)
			continue
		}

		target, ok := pageDir(pages, r.Path)
		if !ok {
			b.logger.Warn().Str("path", r.Path).Msg("Route path leaves the pages directory, skipping")
			report.Skipped = append(report.Skipped, r.Path)
			continue
		}

		label := fmt.Sprintf("📦  install %s to: %s", r.Label(), r.Path)
		b.progress.Start(label)

		if err := os.RemoveAll(target); err != nil {
			b.progress.Fail(label)
			return report, fmt.Errorf("removing %s: %w", target, err)
		}
		catalog.Remove(id)

		args := append(append([]string{}, b.tool[1:]...),
			BlockAddArgs(b.client.BlockURL(id), r.Path, opts.Branch, r.HasChildren, opts.JS)...)
		command := FormatArgs(b.tool[0], args...)
		b.logger.Debug().Str("cmd", command).Msg("Running block tool")

		res, err := b.runner.Run(ctx, projectDir, b.tool[0], args...)
		if err != nil || res.ExitCode != 0 {
			b.progress.Fail(label)
			report.Remaining = catalog.Len()
			return report, &BlockInstallError{
				Route:    r.Path,
				ID:       id,
				Command:  command,
				ExitCode: res.ExitCode,
				Output:   strings.TrimSpace(res.Output),
				Err:      err,
			}
		}

		b.progress.Succeed(label)
		report.Installed = append(report.Installed, InstalledBlock{ID: id, Path: r.Path})
	}

	report.Remaining = catalog.Len()
	b.logger.Debug().Strs("unused", catalog.Paths()).Msg("Blocks left in the catalog")
	return report, nil
}

// pageDir returns the directory a route's block lives in, rejecting paths
// that resolve outside pages.
func pageDir(pages, routePath string) (string, bool) {
	target := filepath.Join(pages, filepath.FromSlash(routePath))
	rel, err := filepath.Rel(pages, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return target, true
}
