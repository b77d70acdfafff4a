package route

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const renderIndent = "  "

var identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Render formats routes as a JavaScript array literal in the style of a
// hand-written umi config: single-quoted strings, bare keys, trailing
// commas. Every line after the first is prefixed with indent so the result
// can be spliced in where the original array started.
func Render(routes []Node, indent string) string {
	var b strings.Builder
	writeRoutes(&b, routes, indent)
	return b.String()
}

func writeRoutes(b *strings.Builder, routes []Node, indent string) {
	if len(routes) == 0 {
		b.WriteString("[]")
		return
	}
	inner := indent + renderIndent
	b.WriteString("[\n")
	for _, r := range routes {
		b.WriteString(inner)
		writeNode(b, r, inner)
		b.WriteString(",\n")
	}
	b.WriteString(indent)
	b.WriteString("]")
}

func writeNode(b *strings.Builder, n Node, indent string) {
	inner := indent + renderIndent
	b.WriteString("{\n")
	for _, f := range n.stringFields() {
		writeKey(b, inner, f.key)
		b.WriteString(quoteJS(f.value))
		b.WriteString(",\n")
	}
	for _, a := range n.Attrs {
		writeKey(b, inner, a.Key)
		writeValue(b, a.Value, inner)
		b.WriteString(",\n")
	}
	if n.Routes != nil {
		writeKey(b, inner, "routes")
		writeRoutes(b, n.Routes, inner)
		b.WriteString(",\n")
	}
	b.WriteString(indent)
	b.WriteString("}")
}

func writeKey(b *strings.Builder, indent, key string) {
	b.WriteString(indent)
	if identRe.MatchString(key) {
		b.WriteString(key)
	} else {
		b.WriteString(quoteJS(key))
	}
	b.WriteString(": ")
}

func writeValue(b *strings.Builder, v any, indent string) {
	switch v := v.(type) {
	case nil:
		b.WriteString("null")
	case string:
		b.WriteString(quoteJS(v))
	case bool:
		b.WriteString(strconv.FormatBool(v))
	case json.Number:
		b.WriteString(v.String())
	case float64:
		b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	case int:
		b.WriteString(strconv.Itoa(v))
	case []any:
		writeArray(b, v, indent)
	case map[string]any:
		writeObject(b, v, indent)
	default:
		b.WriteString(quoteJS(fmt.Sprint(v)))
	}
}

func writeArray(b *strings.Builder, items []any, indent string) {
	if len(items) == 0 {
		b.WriteString("[]")
		return
	}
	if allScalar(items) {
		b.WriteString("[")
		for i, it := range items {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, it, indent)
		}
		b.WriteString("]")
		return
	}
	inner := indent + renderIndent
	b.WriteString("[\n")
	for _, it := range items {
		b.WriteString(inner)
		writeValue(b, it, inner)
		b.WriteString(",\n")
	}
	b.WriteString(indent)
	b.WriteString("]")
}

func writeObject(b *strings.Builder, m map[string]any, indent string) {
	if len(m) == 0 {
		b.WriteString("{}")
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	inner := indent + renderIndent
	b.WriteString("{\n")
	for _, k := range keys {
		writeKey(b, inner, k)
		writeValue(b, m[k], inner)
		b.WriteString(",\n")
	}
	b.WriteString(indent)
	b.WriteString("}")
}

func allScalar(items []any) bool {
	for _, it := range items {
		switch it.(type) {
		case []any, map[string]any:
			return false
		}
	}
	return true
}

func quoteJS(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
