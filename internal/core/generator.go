package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const (
	cloneTimeout = 5 * time.Minute

	VersionUmi4 = "umi@4"
	VersionUmi3 = "umi@3"

	// completeBranch holds the template with every block preinstalled.
	completeBranch = "all-blocks"
)

var (
	// ErrProjectDirNotEmpty is returned when the target directory has files.
	ErrProjectDirNotEmpty = errors.New("project directory is not empty")
	// ErrCompleteUnsupported is returned when complete mode is asked for with umi@4.
	ErrCompleteUnsupported = errors.New("complete mode is not available for umi@4")
)

// CloneBranch returns the template branch for a version and mode. The empty
// string selects the repository's default branch.
func CloneBranch(version string, allBlocks bool) (string, error) {
	switch {
	case allBlocks && version == VersionUmi4:
		return "", ErrCompleteUnsupported
	case allBlocks:
		return completeBranch, nil
	case version == VersionUmi3:
		return VersionUmi3, nil
	default:
		return "", nil
	}
}

// GenerateOptions configures a project generation.
type GenerateOptions struct {
	Name      string `validate:"required"`
	Dir       string // parent directory, defaults to the working directory
	Version   string `validate:"oneof=umi@4 umi@3"`
	AllBlocks bool
	Template  string // template source, overrides settings and mirror probing
	Output    io.Writer
}

// GenerateResult is the outcome of a generation.
type GenerateResult struct {
	ProjectDir string
	Source     *ParsedSource
	Branch     string
	Manifest   *GeneratorManifest // nil when the template has none
	Removed    []string           // files removed by the manifest's ignore list
}

// Generator creates a project from the template repository.
type Generator struct {
	logger   *zerolog.Logger
	settings Settings
	prober   *HostProber
	cleaner  *Cleaner
	progress Progress
	validate *validator.Validate
}

// NewGenerator creates a Generator. prober may be nil, in which case the
// GitHub template is used unless settings name another.
func NewGenerator(logger *zerolog.Logger, settings Settings, prober *HostProber) *Generator {
	return &Generator{
		logger:   logger,
		settings: settings,
		prober:   prober,
		cleaner:  NewCleaner(),
		progress: nopProgress{},
		validate: validator.New(),
	}
}

// WithProgress sets the progress reporter.
func (g *Generator) WithProgress(p Progress) *Generator {
	if p != nil {
		g.progress = p
	}
	return g
}

// Generate creates opts.Name under opts.Dir:
//  1. Refuse a non-empty target directory
//  2. Clone the template branch (or copy a local template)
//  3. Apply the create-umi manifest of package.json
//  4. Remove the files the manifest ignores
func (g *Generator) Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	if opts.Version == "" {
		opts.Version = VersionUmi4
	}
	if err := g.validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	branch, err := CloneBranch(opts.Version, opts.AllBlocks)
	if err != nil {
		return nil, err
	}

	parent := opts.Dir
	if parent == "" {
		if parent, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
	}
	projectDir, err := filepath.Abs(filepath.Join(parent, opts.Name))
	if err != nil {
		return nil, fmt.Errorf("resolving project directory: %w", err)
	}
	if isNonEmptyDir(projectDir) {
		return nil, fmt.Errorf("%s: %w", projectDir, ErrProjectDirNotEmpty)
	}

	src, err := ParseSource(g.templateSource(ctx, opts.Template))
	if err != nil {
		return nil, fmt.Errorf("parsing template source: %w", err)
	}
	ApplyCloneOverride(src, g.settings.CloneURLOverrides)

	result := &GenerateResult{ProjectDir: projectDir, Source: src, Branch: branch}

	// 1. Fetch template
	label := "🚚 clone " + src.CloneURL
	g.progress.Start(label)
	if err := g.fetchTemplate(ctx, src, branch, projectDir, opts.Output); err != nil {
		g.progress.Fail(label)
		return nil, err
	}
	g.progress.Succeed(label)

	// 2. Apply manifest
	manifest, err := ApplyGeneratorManifest(projectDir)
	if err != nil {
		return result, err
	}
	result.Manifest = manifest

	// 3. Clean up
	if manifest != nil && len(manifest.Ignore) > 0 {
		g.logger.Debug().Strs("patterns", manifest.Ignore).Msg("Cleaning up template files")
		cleaned, err := g.cleaner.Clean(projectDir, manifest.Ignore)
		if err != nil {
			return result, fmt.Errorf("cleaning up: %w", err)
		}
		result.Removed = cleaned.Removed
	}

	return result, nil
}

func (g *Generator) templateSource(ctx context.Context, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if g.settings.TemplateRepo != "" {
		return g.settings.TemplateRepo
	}
	if g.prober == nil {
		return githubTemplateURL
	}
	fastest, err := g.prober.Fastest(ctx, TemplateHosts)
	if err != nil {
		g.logger.Debug().Err(err).Msg("Mirror probe failed, using GitHub")
		return githubTemplateURL
	}
	return TemplateCloneURL(fastest)
}

func (g *Generator) fetchTemplate(ctx context.Context, src *ParsedSource, branch, projectDir string, out io.Writer) error {
	if src.Type == SourceTypeLocal {
		if err := copyDirectory(src.CloneURL, projectDir); err != nil {
			return fmt.Errorf("copying template: %w", err)
		}
		return nil
	}

	existed := dirExists(projectDir)
	ctx, cancel := context.WithTimeout(ctx, cloneTimeout)
	defer cancel()

	opts := &git.CloneOptions{
		URL:          src.CloneURL,
		Depth:        1,
		SingleBranch: true,
		Progress:     out,
	}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}

	g.logger.Debug().Str("cmd", FormatCommand(src.CloneURL, branch)).Msg("Cloning template")
	if _, err := git.PlainCloneContext(ctx, projectDir, false, opts); err != nil {
		if !existed {
			_ = os.RemoveAll(projectDir)
		}
		return ClassifyCloneError(src.CloneURL, branch, err)
	}
	return nil
}
