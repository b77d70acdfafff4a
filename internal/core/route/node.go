// Package route models the nested route configuration of a generated project
// and the transforms procreate applies to it: flattening into installable
// routes, filtering down to the structural routes kept in the config file,
// and rendering the result back to JavaScript source.
package route

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// NotFoundComponent is the component marker of the catch-all route.
const NotFoundComponent = "404"

// Attr is a route attribute that procreate passes through untouched
// (authority, hideInMenu, exact, ...).
type Attr struct {
	Key   string
	Value any
}

// Node is one entry of a route configuration.
//
// Routes distinguishes "absent" (nil) from "present but empty" (non-nil,
// zero length): a node that declares a routes list is a container even
// when the list is empty.
type Node struct {
	Path      string
	Name      string
	Icon      string
	Component string
	Redirect  string
	Routes    []Node
	Attrs     []Attr
}

// Tree is a route list together with the component of its owner. Route
// manifests written as a bare array have no owner component.
type Tree struct {
	Component string
	Routes    []Node
}

// HasRoutes reports whether the node declares a routes list.
func (n Node) HasRoutes() bool { return n.Routes != nil }

// IsNotFound reports whether the node is the path-less 404 route.
func (n Node) IsNotFound() bool { return n.Path == "" && n.Component == NotFoundComponent }

// IsRedirect reports whether the node redirects elsewhere.
func (n Node) IsRedirect() bool { return n.Redirect != "" }

// Label returns the name used when reporting on the node.
func (n Node) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return n.Path
}

// Clone returns a deep copy of the node.
func (n Node) Clone() Node {
	c := n
	if n.Routes != nil {
		c.Routes = make([]Node, len(n.Routes))
		for i, r := range n.Routes {
			c.Routes[i] = r.Clone()
		}
	}
	if n.Attrs != nil {
		c.Attrs = make([]Attr, len(n.Attrs))
		for i, a := range n.Attrs {
			c.Attrs[i] = Attr{Key: a.Key, Value: cloneValue(a.Value)}
		}
	}
	return c
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// UnmarshalJSON decodes a route object, keeping unknown keys as Attrs in
// source order.
func (n *Node) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("route must be an object, got %v", tok)
	}

	var out Node
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected route key %v", tok)
		}

		switch key {
		case "path":
			err = decodeText(dec, &out.Path)
		case "name":
			err = decodeText(dec, &out.Name)
		case "icon":
			err = decodeText(dec, &out.Icon)
		case "component":
			err = decodeText(dec, &out.Component)
		case "redirect":
			err = decodeText(dec, &out.Redirect)
		case "routes":
			// A null routes value counts as absent.
			err = dec.Decode(&out.Routes)
		default:
			var v any
			err = dec.Decode(&v)
			out.Attrs = append(out.Attrs, Attr{Key: key, Value: v})
		}
		if err != nil {
			return fmt.Errorf("route %q: %w", key, err)
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*n = out
	return nil
}

// decodeText decodes a string field. Numbers and booleans keep their literal
// text, so YAML such as `component: 404` reads as "404".
func decodeText(dec *json.Decoder, dst *string) error {
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		*dst = t
	case json.Number:
		*dst = t.String()
	case bool:
		*dst = strconv.FormatBool(t)
	case nil:
		*dst = ""
	default:
		return fmt.Errorf("want a string, got %T", v)
	}
	return nil
}

// MarshalJSON encodes the node with its well-known keys first, then the
// passthrough attributes, then the child routes.
func (n Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(key string, v any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("route %q: %w", key, err)
		}
		buf.Write(data)
		return nil
	}

	for _, f := range n.stringFields() {
		if err := write(f.key, f.value); err != nil {
			return nil, err
		}
	}
	for _, a := range n.Attrs {
		if err := write(a.Key, a.Value); err != nil {
			return nil, err
		}
	}
	if n.Routes != nil {
		if err := write("routes", n.Routes); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type stringField struct {
	key   string
	value string
}

// stringFields lists the set well-known string fields in output order.
func (n Node) stringFields() []stringField {
	all := []stringField{
		{"path", n.Path},
		{"name", n.Name},
		{"icon", n.Icon},
		{"component", n.Component},
		{"redirect", n.Redirect},
	}
	out := all[:0]
	for _, f := range all {
		if f.value != "" {
			out = append(out, f)
		}
	}
	return out
}
