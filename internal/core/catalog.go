package core

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	catalogTimeout = 30 * time.Second

	catalogDirType = "tree"
)

// nonBlockDirs are top-level registry directories that hold no block.
var nonBlockDirs = map[string]bool{
	"_scripts": true,
	"tests":    true,
}

// CatalogClient lists the blocks available in a GitHub-hosted block registry.
type CatalogClient struct {
	logger     *zerolog.Logger
	httpClient *http.Client
	baseURL    string
	repo       string
	ref        string
}

// NewCatalogClient creates a client for the registry repo (owner/name) at ref.
func NewCatalogClient(logger *zerolog.Logger, repo, ref string) *CatalogClient {
	return &CatalogClient{
		logger: logger,
		httpClient: &http.Client{
			Timeout: catalogTimeout,
		},
		baseURL: DefaultCatalogURL,
		repo:    repo,
		ref:     ref,
	}
}

// WithBaseURL points the client at another GitHub API endpoint.
func (c *CatalogClient) WithBaseURL(baseURL string) *CatalogClient {
	if baseURL != "" {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
	return c
}

// TreeURL returns the Git Trees API URL listing the registry's top level.
func (c *CatalogClient) TreeURL() string {
	return fmt.Sprintf("%s/repos/%s/git/trees/%s", c.baseURL, c.repo, c.ref)
}

// BlockURL returns the URL the block tool installs the block id from.
func (c *CatalogClient) BlockURL(id string) string {
	return fmt.Sprintf("https://github.com/%s/tree/%s/%s", c.repo, c.ref, id)
}

// treeResponse represents the GitHub Git Trees API response.
type treeResponse struct {
	SHA       string         `json:"sha"`
	Tree      []CatalogEntry `json:"tree"`
	Truncated bool           `json:"truncated"`
}

// Fetch returns the block directories of the registry in listing order.
// A registry that cannot be listed yields an empty catalog: the failure is
// logged and nothing will be installed.
func (c *CatalogClient) Fetch(ctx context.Context) []CatalogEntry {
	url := c.TreeURL()
	c.logger.Debug().Msgf("Fetching block catalog from %s", url)

	tree, err := c.fetchTree(ctx, url)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Block catalog unavailable, no blocks will be installed")
		return []CatalogEntry{}
	}

	entries := make([]CatalogEntry, 0, len(tree.Tree))
	for _, e := range tree.Tree {
		if e.Type != catalogDirType || nonBlockDirs[e.Path] {
			continue
		}
		entries = append(entries, e)
	}

	c.logger.Debug().Msgf("Found %d blocks in %s", len(entries), c.repo)
	return entries
}

func (c *CatalogClient) fetchTree(ctx context.Context, url string) (*treeResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	setAuthHeaders(req)
	req.Header.Set("User-Agent", "procreate")
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch block tree: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("block tree request failed with status: %s", resp.Status)
	}

	var tree treeResponse
	if err := json.NewDecoder(resp.Body).Decode(&tree); err != nil {
		return nil, fmt.Errorf("failed to decode block tree: %w", err)
	}
	return &tree, nil
}

func setAuthHeaders(req *http.Request) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// Catalog is the working set of blocks for one run. It is owned by a
// single installer and is not safe for concurrent use.
type Catalog struct {
	entries []CatalogEntry
}

// NewCatalog creates a catalog over a copy of entries.
func NewCatalog(entries []CatalogEntry) *Catalog {
	return &Catalog{entries: append([]CatalogEntry(nil), entries...)}
}

// Match reports whether a block with identifier id is still available.
// The empty identifier never matches.
func (c *Catalog) Match(id string) bool {
	return c.index(id) >= 0
}

// Remove drops the block with identifier id. It reports whether the block
// was present.
func (c *Catalog) Remove(id string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	return true
}

// Len returns the number of available blocks.
func (c *Catalog) Len() int { return len(c.entries) }

// Paths returns the identifiers of the available blocks in order.
func (c *Catalog) Paths() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Path
	}
	return out
}

func (c *Catalog) index(id string) int {
	if id == "" {
		return -1
	}
	for i, e := range c.entries {
		if e.Path == id {
			return i
		}
	}
	return -1
}
