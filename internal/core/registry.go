package core

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog"
)

// DefaultNpmRegistry is used when no other registry can be determined.
const DefaultNpmRegistry = "https://registry.npmjs.org/"

// NpmRegistryMirrors are probed when npm itself cannot report a registry.
var NpmRegistryMirrors = []string{
	DefaultNpmRegistry,
	"https://registry.npmmirror.com/",
}

var registryEnvVars = []string{"npm_config_registry", "NPM_CONFIG_REGISTRY"}

// RegistryResolver determines the npm registry dependencies are installed from.
type RegistryResolver struct {
	logger   *zerolog.Logger
	runner   Runner
	prober   *HostProber
	override string
}

// NewRegistryResolver creates a resolver. runner must capture output.
// override, when set, wins over every other source; prober may be nil.
func NewRegistryResolver(logger *zerolog.Logger, runner Runner, prober *HostProber, override string) *RegistryResolver {
	return &RegistryResolver{
		logger:   logger,
		runner:   runner,
		prober:   prober,
		override: override,
	}
}

// Resolve returns the registry URL for projectDir. Sources in order: the
// configured override, npm_config_registry, `npm config get registry`,
// the quickest of NpmRegistryMirrors, DefaultNpmRegistry.
func (r *RegistryResolver) Resolve(ctx context.Context, projectDir string) string {
	if r.override != "" {
		return r.override
	}
	for _, name := range registryEnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); isRegistryURL(v) {
			return v
		}
	}

	reg, err := r.fromNpm(ctx, projectDir)
	if err == nil {
		return reg
	}
	r.logger.Debug().Err(err).Msg("npm did not report a registry")

	if r.prober != nil {
		if fastest, err := r.prober.Fastest(ctx, NpmRegistryMirrors); err == nil {
			return fastest
		}
	}
	return DefaultNpmRegistry
}

func (r *RegistryResolver) fromNpm(ctx context.Context, projectDir string) (string, error) {
	var registry string
	err := retry.Do(
		func() error {
			res, err := r.runner.Run(ctx, projectDir, "npm", "config", "get", "registry")
			if err != nil {
				return retry.Unrecoverable(err)
			}
			if res.ExitCode != 0 {
				return fmt.Errorf("npm config get registry exited with status %d", res.ExitCode)
			}
			out := strings.TrimSpace(res.Output)
			if !isRegistryURL(out) {
				return fmt.Errorf("unexpected npm registry %q", out)
			}
			registry = out
			return nil
		},
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return "", err
	}
	return registry, nil
}

func isRegistryURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
