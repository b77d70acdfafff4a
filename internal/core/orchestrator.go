package core

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/barysiuk/procreate/internal/core/route"
)

// Orchestrator drives a fetch-blocks run: it rewrites the project's route
// config, installs the blocks of its content routes and installs
// dependencies.
type Orchestrator struct {
	logger    *zerolog.Logger
	catalog   *CatalogClient
	installer *BlockInstaller
	deps      *DependencyInstaller
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(logger *zerolog.Logger, catalog *CatalogClient, installer *BlockInstaller, deps *DependencyInstaller) *Orchestrator {
	return &Orchestrator{
		logger:    logger,
		catalog:   catalog,
		installer: installer,
		deps:      deps,
	}
}

// FetchBlocksOptions configures a fetch-blocks run.
type FetchBlocksOptions struct {
	ProjectDir   string
	Branch       string
	JS           bool // force the JavaScript block variant
	Routes       route.Tree
	SkipExcluded bool // leave ExcludedPaths out of the installable routes
}

// FetchBlocksResult is the outcome of a fetch-blocks run.
type FetchBlocksResult struct {
	ConfigPath        string   // config file that was found
	RoutesPath        string   // file the route array was written to
	JS                bool     // whether JavaScript blocks were requested
	Install           *InstallReport
	DependencyCommand []string // nil when dependencies were not installed
}

// FetchBlocks runs the whole flow for a project:
//  1. Locate config/config.ts or config/config.js
//  2. Write the structural part of the route tree back to the config
//  3. Fetch the block catalog
//  4. Install the block of every matching content route, stopping at the first failure
//  5. Install dependencies once
//
// A project without a config returns ErrRouteConfigNotFound before any write.
// When an install fails the partial result is returned with the error and
// dependencies are not installed.
func (o *Orchestrator) FetchBlocks(ctx context.Context, opts FetchBlocksOptions) (*FetchBlocksResult, error) {
	configPath, isJS, err := LocateRouteConfig(opts.ProjectDir)
	if err != nil {
		return nil, err
	}
	o.logger.Debug().Str("config", configPath).Bool("js", isJS).Msg("Found route config")

	result := &FetchBlocksResult{
		ConfigPath: configPath,
		JS:         opts.JS || isJS,
	}

	// 1. Rewrite routes
	parents := route.FilterParents(opts.Routes, true)
	rw, err := route.Rewrite(configPath, parents)
	if err != nil {
		return result, fmt.Errorf("rewriting routes: %w", err)
	}
	if err := writeFilePreservingMode(rw.TargetPath, []byte(rw.Source)); err != nil {
		return result, fmt.Errorf("writing routes: %w", err)
	}
	result.RoutesPath = rw.TargetPath

	// 2. Install blocks
	catalog := NewCatalog(o.catalog.Fetch(ctx))
	installable := route.FlattenWith(opts.Routes.Routes, opts.SkipExcluded)
	report, err := o.installer.Install(ctx, opts.ProjectDir, installable, catalog, BlockInstallOptions{
		Branch: opts.Branch,
		JS:     result.JS,
	})
	result.Install = report
	if err != nil {
		return result, err
	}

	// 3. Install dependencies
	argv, err := o.deps.Install(ctx, opts.ProjectDir)
	result.DependencyCommand = argv
	if err != nil {
		return result, err
	}
	return result, nil
}

func writeFilePreservingMode(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, data, mode)
}
