package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tailscale/hujson"
	"github.com/tidwall/pretty"
)

// generatorManifestKey is the package.json section read by the generator.
const generatorManifestKey = "create-umi"

// packageKeyOrder is the canonical top-level key order of package.json.
var packageKeyOrder = []string{
	"$schema", "name", "displayName", "version", "private", "description",
	"categories", "keywords", "homepage", "bugs", "repository", "funding",
	"license", "qna", "author", "maintainers", "contributors", "publisher",
	"sideEffects", "type", "imports", "exports", "main", "svelte", "umd:main",
	"jsdelivr", "unpkg", "module", "source", "jsnext:main", "browser",
	"react-native", "types", "typesVersions", "typings", "style", "example",
	"examplestyle", "assets", "bin", "man", "directories", "files", "workspaces",
	"binary", "scripts", "betterScripts", "contributes", "activationEvents",
	"husky", "simple-git-hooks", "pre-commit", "commitlint", "lint-staged",
	"config", "nodemonConfig", "browserify", "babel", "browserslist", "xo",
	"prettier", "eslintConfig", "eslintIgnore", "npmpackagejsonlint",
	"release", "remarkConfig", "stylelint", "ava", "jest", "mocha", "nyc",
	"tap", "resolutions", "dependencies", "devDependencies",
	"dependenciesMeta", "peerDependencies", "peerDependenciesMeta",
	"optionalDependencies", "bundledDependencies", "bundleDependencies",
	"extensionPack", "extensionDependencies", "flat", "packageManager",
	"engines", "engineStrict", "volta", "languageName", "os", "cpu",
	"preferGlobal", "publishConfig", "icon", "badges", "galleryBanner",
	"preview", "markdown",
}

// sortedDependencyKeys are the sections whose entries are sorted by name.
var sortedDependencyKeys = map[string]bool{
	"dependencies":         true,
	"devDependencies":      true,
	"peerDependencies":     true,
	"optionalDependencies": true,
	"resolutions":          true,
}

// ReadGeneratorManifest returns the create-umi section of a package.json,
// or nil if it has none.
func ReadGeneratorManifest(data []byte) (*GeneratorManifest, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing package.json: %w", err)
	}
	var pkg struct {
		Manifest *GeneratorManifest `json:"create-umi"`
	}
	if err := json.Unmarshal(std, &pkg); err != nil {
		return nil, fmt.Errorf("parsing package.json: %w", err)
	}
	return pkg.Manifest, nil
}

// ApplyGeneratorManifest rewrites projectDir/package.json according to its
// create-umi section and returns the section. A package.json without one is
// left untouched and nil is returned.
func ApplyGeneratorManifest(projectDir string) (*GeneratorManifest, error) {
	path := filepath.Join(projectDir, "package.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading package.json: %w", err)
	}

	m, err := ReadGeneratorManifest(data)
	if err != nil || m == nil {
		return nil, err
	}

	out, err := FilterManifest(data, m)
	if err != nil {
		return nil, err
	}
	if err := writeFilePreservingMode(path, out); err != nil {
		return nil, fmt.Errorf("writing package.json: %w", err)
	}
	return m, nil
}

// FilterManifest applies a create-umi manifest to package.json contents:
// scripts matching ignoreScript and devDependencies matching
// ignoreDependencies are dropped, the create-umi section is removed, and
// the document is sorted into canonical order and pretty printed.
// Patterns are globs.
func FilterManifest(data []byte, m *GeneratorManifest) ([]byte, error) {
	root, err := hujson.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing package.json: %w", err)
	}

	var ops []string
	for _, f := range []struct {
		section  string
		patterns []string
	}{
		{"scripts", m.IgnoreScript},
		{"devDependencies", m.IgnoreDependencies},
	} {
		for _, key := range matchingKeys(&root, f.section, f.patterns) {
			ops = append(ops, removeOp("/"+jsonPointerEscape(f.section)+"/"+jsonPointerEscape(key)))
		}
	}
	if root.Find("/"+jsonPointerEscape(generatorManifestKey)) != nil {
		ops = append(ops, removeOp("/"+jsonPointerEscape(generatorManifestKey)))
	}
	if len(ops) > 0 {
		if err := root.Patch([]byte("[" + strings.Join(ops, ",") + "]")); err != nil {
			return nil, fmt.Errorf("filtering package.json: %w", err)
		}
	}

	sortPackage(&root)
	root.Standardize()
	return pretty.PrettyOptions(root.Pack(), &pretty.Options{
		Width:  80,
		Indent: "  ",
	}), nil
}

func removeOp(ptr string) string {
	p, _ := json.Marshal(ptr)
	return `{"op":"remove","path":` + string(p) + `}`
}

// matchingKeys returns the keys of the object at /section matching any pattern.
func matchingKeys(root *hujson.Value, section string, patterns []string) []string {
	if len(patterns) == 0 {
		return nil
	}
	v := root.Find("/" + jsonPointerEscape(section))
	if v == nil {
		return nil
	}
	obj, ok := v.Value.(*hujson.Object)
	if !ok {
		return nil
	}

	var keys []string
	for _, mem := range obj.Members {
		name := memberName(mem)
		for _, p := range patterns {
			if ok, _ := doublestar.Match(p, name); ok {
				keys = append(keys, name)
				break
			}
		}
	}
	return keys
}

// sortPackage orders top-level keys canonically, unknown keys last in
// their original order, and sorts dependency sections by name.
func sortPackage(root *hujson.Value) {
	obj, ok := root.Value.(*hujson.Object)
	if !ok {
		return
	}

	rank := make(map[string]int, len(packageKeyOrder))
	for i, k := range packageKeyOrder {
		rank[k] = i
	}
	keyRank := func(name string) int {
		if r, ok := rank[name]; ok {
			return r
		}
		return len(packageKeyOrder)
	}
	sort.SliceStable(obj.Members, func(i, j int) bool {
		return keyRank(memberName(obj.Members[i])) < keyRank(memberName(obj.Members[j]))
	})

	for i := range obj.Members {
		if !sortedDependencyKeys[memberName(obj.Members[i])] {
			continue
		}
		if deps, ok := obj.Members[i].Value.Value.(*hujson.Object); ok {
			sort.SliceStable(deps.Members, func(a, b int) bool {
				return memberName(deps.Members[a]) < memberName(deps.Members[b])
			})
		}
	}
}

func memberName(m hujson.ObjectMember) string {
	if lit, ok := m.Name.Value.(hujson.Literal); ok {
		return lit.String()
	}
	return ""
}

// jsonPointerEscape escapes a string for use as a JSON Pointer token (RFC 6901).
func jsonPointerEscape(s string) string {
	result := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '~':
			result = append(result, '~', '0')
		case '/':
			result = append(result, '~', '1')
		default:
			result = append(result, s[i])
		}
	}
	return string(result)
}
