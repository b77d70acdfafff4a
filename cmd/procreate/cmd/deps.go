package cmd

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/barysiuk/procreate/internal/core"
	"github.com/barysiuk/procreate/internal/logger"
)

// settingEnv maps setting keys to the viper keys read from PROCREATE_*
// variables, e.g. blockRepo from PROCREATE_BLOCK_REPO.
var settingEnv = map[string]string{
	"blockRepo":    "block_repo",
	"blockRef":     "block_ref",
	"blockTool":    "block_tool",
	"catalogURL":   "catalog_url",
	"templateRepo": "template_repo",
	"npmRegistry":  "npm_registry",
}

// deps holds shared dependencies for CLI commands.
type deps struct {
	config   *core.ConfigManager
	settings core.Settings // stored settings with environment overrides applied
	logger   *zerolog.Logger
}

// newDeps creates shared dependencies. Called lazily by commands that need them.
func newDeps() (*deps, error) {
	config, err := core.NewConfigManager()
	if err != nil {
		return nil, fmt.Errorf("initializing config: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	settings := cfg.Settings
	for key, envKey := range settingEnv {
		if val := v.GetString(envKey); val != "" {
			if err := settings.Set(key, val); err != nil {
				return nil, err
			}
		}
	}

	return &deps{
		config:   config,
		settings: settings,
		logger:   logger.NewConsoleLogger(v.GetBool("verbose")),
	}, nil
}

// envResolver returns the resolver of spawned tool environments for projectDir.
func (d *deps) envResolver(projectDir string) *core.EnvResolver {
	return core.NewEnvResolver(projectDir, d.config.ConfigDir())
}

// orchestrator wires a fetch-blocks run for projectDir.
func (d *deps) orchestrator(projectDir string, progress core.Progress) *core.Orchestrator {
	env := d.envResolver(projectDir).Environ()
	runner := core.NewExecRunner(env)
	prober := core.NewHostProber(d.logger)

	client := core.NewCatalogClient(d.logger, d.settings.BlockRepo, d.settings.BlockRef).
		WithBaseURL(d.settings.CatalogURL)
	installer := core.NewBlockInstaller(d.logger, runner, client, d.settings.BlockTool).
		WithProgress(progress)

	// npm config lookups must be captured even in debug mode.
	registry := core.NewRegistryResolver(d.logger, &core.ExecRunner{Env: env}, prober, d.settings.NpmRegistry)
	dependencies := core.NewDependencyInstaller(d.logger, runner, registry).
		WithProgress(progress)

	return core.NewOrchestrator(d.logger, client, installer, dependencies)
}

// generator wires a project generation.
func (d *deps) generator(progress core.Progress) *core.Generator {
	return core.NewGenerator(d.logger, d.settings, core.NewHostProber(d.logger)).
		WithProgress(progress)
}
