// Package core provides the business logic for procreate.
// It has zero UI dependencies and is independently testable.
package core

// Config represents the procreate configuration stored at ~/.procreate/config.json.
type Config struct {
	Settings Settings `json:"settings"`
}

// Settings holds user preferences.
type Settings struct {
	BlockRepo         string            `json:"blockRepo"`                   // owner/repo of the block registry
	BlockRef          string            `json:"blockRef"`                    // branch listed by the catalog
	BlockTool         string            `json:"blockTool"`                   // command that installs a block, e.g. "umi" or "npx umi"
	CatalogURL        string            `json:"catalogURL,omitempty"`        // GitHub API base URL
	TemplateRepo      string            `json:"templateRepo,omitempty"`      // clone URL or local path of the project template
	NpmRegistry       string            `json:"npmRegistry,omitempty"`       // forces the dependency install registry
	CloneURLOverrides map[string]string `json:"cloneURLOverrides,omitempty"` // template URL -> clone URL
}

// CatalogEntry is one entry of the block registry's top-level tree.
type CatalogEntry struct {
	Path string `json:"path"`
	Type string `json:"type"` // "blob" or "tree"
}

// GeneratorManifest is the create-umi section of a template's package.json.
type GeneratorManifest struct {
	IgnoreScript       []string `json:"ignoreScript"`
	IgnoreDependencies []string `json:"ignoreDependencies"`
	Ignore             []string `json:"ignore"`
}

// ParsedSource represents a parsed template source string.
type ParsedSource struct {
	Type     SourceType
	Host     string // Hostname (e.g. "github.com", "gitee.com")
	Owner    string // Repository owner
	Repo     string // Repository name
	CloneURL string // Full git clone URL, or the directory for local sources
}

// SourceType indicates the kind of template source.
type SourceType string

const (
	SourceTypeGit   SourceType = "git"
	SourceTypeLocal SourceType = "local"
)
