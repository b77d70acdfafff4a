package core

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrRouteConfigNotFound is returned when a project has neither
// config/config.ts nor config/config.js.
var ErrRouteConfigNotFound = errors.New("route config not found")

// routeConfigCandidates are checked in order; the flag marks the
// JavaScript variant.
var routeConfigCandidates = []struct {
	name string
	js   bool
}{
	{"config/config.ts", false},
	{"config/config.js", true},
}

// LocateRouteConfig returns the umi config file of projectDir and whether
// it is the JavaScript variant.
func LocateRouteConfig(projectDir string) (string, bool, error) {
	for _, c := range routeConfigCandidates {
		p := filepath.Join(projectDir, filepath.FromSlash(c.name))
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, c.js, nil
		}
	}
	return "", false, ErrRouteConfigNotFound
}
