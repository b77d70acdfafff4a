package core

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

const (
	envFileName = ".env.procreate"

	// debugEnv enables inherited child process output when it mentions
	// one of debugScopes.
	debugEnv = "DEBUG"

	skipChromiumEnv = "PUPPETEER_SKIP_CHROMIUM_DOWNLOAD"
)

var debugScopes = []string{"procreate", "pro-cli"}

// IsDebug reports whether DEBUG selects procreate output.
func IsDebug() bool {
	v := os.Getenv(debugEnv)
	for _, scope := range debugScopes {
		if strings.Contains(v, scope) {
			return true
		}
	}
	return false
}

// EnvResolver builds the environment of spawned tools.
// It follows the precedence: process env > project .env.procreate > global .env.procreate.
type EnvResolver struct {
	projectDir string
	globalDir  string // ~/.procreate/
}

// NewEnvResolver creates an EnvResolver for the given project directory.
// globalDir defaults to ~/.procreate/ if empty.
func NewEnvResolver(projectDir, globalDir string) *EnvResolver {
	if globalDir == "" {
		home, _ := os.UserHomeDir()
		globalDir = filepath.Join(home, configDirName)
	}
	return &EnvResolver{
		projectDir: projectDir,
		globalDir:  globalDir,
	}
}

// EnvSource indicates where an env var value was resolved from.
type EnvSource string

const (
	EnvSourceProcess EnvSource = "process"
	EnvSourceProject EnvSource = "project"
	EnvSourceGlobal  EnvSource = "global"
)

// ResolvedEnvVar holds a resolved env var value and its source.
type ResolvedEnvVar struct {
	Name   string
	Value  string
	Source EnvSource
}

// Files returns the variables declared in the env files, project values
// taking precedence over global ones, each with the file it came from.
// Variables that are also set in the process environment report that instead.
func (r *EnvResolver) Files() []ResolvedEnvVar {
	merged := make(map[string]ResolvedEnvVar)
	for name, val := range readEnvFile(filepath.Join(r.globalDir, envFileName)) {
		merged[name] = ResolvedEnvVar{Name: name, Value: val, Source: EnvSourceGlobal}
	}
	for name, val := range readEnvFile(filepath.Join(r.projectDir, envFileName)) {
		merged[name] = ResolvedEnvVar{Name: name, Value: val, Source: EnvSourceProject}
	}
	for name := range merged {
		if val, ok := os.LookupEnv(name); ok {
			merged[name] = ResolvedEnvVar{Name: name, Value: val, Source: EnvSourceProcess}
		}
	}

	out := make([]ResolvedEnvVar, 0, len(merged))
	for _, v := range merged {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Environ returns the environment for spawned tools: the process
// environment, the env file variables it does not already define, and
// PUPPETEER_SKIP_CHROMIUM_DOWNLOAD=true.
func (r *EnvResolver) Environ() []string {
	env := os.Environ()
	for _, v := range r.Files() {
		if v.Source != EnvSourceProcess {
			env = append(env, v.Name+"="+v.Value)
		}
	}
	return append(env, skipChromiumEnv+"=true")
}

// readEnvFile parses a dotenv file. Returns nil if the file does not
// exist or cannot be parsed.
func readEnvFile(path string) map[string]string {
	env, err := godotenv.Read(path)
	if err != nil {
		return nil
	}
	return env
}
