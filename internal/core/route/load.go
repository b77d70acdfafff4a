package route

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/routes.jsonc
var defaultRoutes []byte

// Default returns the route tree of the complete project template.
func Default() Tree {
	t, err := Parse(defaultRoutes, ".jsonc")
	if err != nil {
		panic(fmt.Sprintf("embedded routes: %v", err))
	}
	return t
}

// Load reads a route manifest from disk. The format is chosen by extension:
// .yaml and .yml are YAML, anything else is JSON with comments and trailing
// commas allowed.
func Load(path string) (Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tree{}, fmt.Errorf("reading route manifest: %w", err)
	}
	t, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Tree{}, fmt.Errorf("parsing route manifest %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a route manifest. The document is either a bare route list
// or an object with "component" and "routes" keys.
func Parse(data []byte, ext string) (Tree, error) {
	var (
		doc []byte
		err error
	)
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		doc, err = yamlToJSON(data)
	default:
		doc, err = hujson.Standardize(data)
	}
	if err != nil {
		return Tree{}, err
	}

	doc = bytes.TrimSpace(doc)
	if len(doc) == 0 {
		return Tree{}, fmt.Errorf("empty route manifest")
	}

	if doc[0] == '[' {
		var routes []Node
		if err := json.Unmarshal(doc, &routes); err != nil {
			return Tree{}, err
		}
		return Tree{Routes: routes}, nil
	}

	var owner struct {
		Component string `json:"component"`
		Routes    []Node `json:"routes"`
	}
	if err := json.Unmarshal(doc, &owner); err != nil {
		return Tree{}, err
	}
	return Tree{Component: owner.Component, Routes: owner.Routes}, nil
}

// yamlToJSON converts a YAML document to JSON, keeping mapping keys in
// document order so passthrough attributes survive a round trip unchanged.
func yamlToJSON(data []byte) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("empty route manifest")
	}
	if err := writeYAMLNode(&buf, root.Content[0]); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// textKeys are route keys whose YAML scalars are kept as written, so
// `component: 404` or `name: 1.0` stay strings.
var textKeys = map[string]bool{
	"path":      true,
	"name":      true,
	"icon":      true,
	"component": true,
	"redirect":  true,
}

func writeYAMLNode(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeYAMLNode(buf, n.Content[0])
	case yaml.AliasNode:
		return writeYAMLNode(buf, n.Alias)
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeYAMLNode(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, _ := json.Marshal(n.Content[i].Value)
			buf.Write(key)
			buf.WriteByte(':')
			if val := n.Content[i+1]; textKeys[n.Content[i].Value] && val.Kind == yaml.ScalarNode && val.Tag != "!!null" {
				text, _ := json.Marshal(val.Value)
				buf.Write(text)
				continue
			}
			if err := writeYAMLNode(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		buf.Write(data)
		return nil
	default:
		return fmt.Errorf("line %d: unsupported yaml node", n.Line)
	}
}
