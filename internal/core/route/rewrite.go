package route

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrRoutesNotFound is returned when no route array literal can be located
// in the config source or the module it imports routes from.
var ErrRoutesNotFound = errors.New("routes array not found")

// Rewritten is the result of rewriting a route config: the file to write
// and its new contents.
type Rewritten struct {
	TargetPath string
	Source     string
}

// Rewrite locates the route array used by the umi config at configPath and
// returns the source with that array replaced by routes.
//
// The array is either inline (`routes: [...]`) or referenced through an
// identifier (`routes: routes` or shorthand `routes,`). Identifiers are
// resolved through a default import of a sibling module, whose
// `export default [...]` is rewritten, or through a `const` binding in the
// config file itself.
func Rewrite(configPath string, routes []Node) (*Rewritten, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading route config: %w", err)
	}
	src := string(data)

	prop, ok := findRoutesProperty(src)
	if !ok {
		return nil, fmt.Errorf("%s: %w", configPath, ErrRoutesNotFound)
	}

	if prop.arrayStart >= 0 {
		out, err := replaceArray(src, prop.arrayStart, routes)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", configPath, err)
		}
		return &Rewritten{TargetPath: configPath, Source: out}, nil
	}

	if rel, ok := findDefaultImport(src, prop.ident); ok {
		target, err := resolveModule(filepath.Dir(configPath), rel)
		if err != nil {
			return nil, err
		}
		return rewriteDefaultExport(target, routes)
	}

	start, ok := findBinding(src, prop.ident)
	if !ok {
		return nil, fmt.Errorf("%s: binding %q: %w", configPath, prop.ident, ErrRoutesNotFound)
	}
	out, err := replaceArray(src, start, routes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return &Rewritten{TargetPath: configPath, Source: out}, nil
}

func rewriteDefaultExport(path string, routes []Node) (*Rewritten, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading route module: %w", err)
	}
	src := string(data)

	loc := exportDefaultRe.FindStringIndex(src)
	if loc == nil {
		return nil, fmt.Errorf("%s: no default export: %w", path, ErrRoutesNotFound)
	}
	i := skipTrivia(src, loc[1])

	start := -1
	switch {
	case i < len(src) && src[i] == '[':
		start = i
	case i < len(src) && isIdentStart(src[i]):
		ident := readIdent(src, i)
		s, ok := findBinding(src, ident)
		if !ok {
			return nil, fmt.Errorf("%s: binding %q: %w", path, ident, ErrRoutesNotFound)
		}
		start = s
	default:
		return nil, fmt.Errorf("%s: default export is not an array: %w", path, ErrRoutesNotFound)
	}

	out, err := replaceArray(src, start, routes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Rewritten{TargetPath: path, Source: out}, nil
}

func replaceArray(src string, start int, routes []Node) (string, error) {
	end, err := matchClose(src, start)
	if err != nil {
		return "", err
	}
	return src[:start] + Render(routes, lineIndent(src, start)) + src[end+1:], nil
}

var (
	exportDefaultRe = regexp.MustCompile(`(?m)^\s*export\s+default\s+`)
	moduleExts      = []string{"", ".ts", ".js", "/index.ts", "/index.js"}
)

func findDefaultImport(src, ident string) (string, bool) {
	re := regexp.MustCompile(`import\s+` + regexp.QuoteMeta(ident) + `\s+from\s+['"]([^'"]+)['"]`)
	m := re.FindStringSubmatch(src)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// findBinding returns the offset of the array literal bound to ident by a
// const, let or var declaration. TypeScript annotations are allowed.
func findBinding(src, ident string) (int, bool) {
	re := regexp.MustCompile(`(?:const|let|var)\s+` + regexp.QuoteMeta(ident) + `\s*(?::[^=]*)?=\s*`)
	loc := re.FindStringIndex(src)
	if loc == nil {
		return 0, false
	}
	i := skipTrivia(src, loc[1])
	if i >= len(src) || src[i] != '[' {
		return 0, false
	}
	return i, true
}

func resolveModule(dir, rel string) (string, error) {
	if !strings.HasPrefix(rel, ".") {
		return "", fmt.Errorf("routes imported from package %q: %w", rel, ErrRoutesNotFound)
	}
	base := filepath.Join(dir, filepath.FromSlash(rel))
	for _, ext := range moduleExts {
		p := base + filepath.FromSlash(ext)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, nil
		}
	}
	return "", fmt.Errorf("routes module %q: %w", rel, ErrRoutesNotFound)
}

type routesProperty struct {
	// arrayStart is the offset of an inline '[' or -1.
	arrayStart int
	ident      string
}

// findRoutesProperty finds the first object property named routes.
func findRoutesProperty(src string) (routesProperty, bool) {
	var prev byte
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case isSpace(c):
			i++
		case c == '/' && i+1 < len(src) && (src[i+1] == '/' || src[i+1] == '*'):
			i = skipComment(src, i)
		case c == '\'' || c == '"' || c == '`':
			i = skipString(src, i)
			prev = '"'
		case c == '/' && regexAllowed(prev):
			i = skipRegex(src, i)
			prev = '"'
		case isIdentStart(c):
			word := readIdent(src, i)
			end := i + len(word)
			if word == "routes" && (prev == '{' || prev == ',') {
				j := skipTrivia(src, end)
				if j < len(src) {
					switch src[j] {
					case ':':
						k := skipTrivia(src, j+1)
						if k < len(src) && src[k] == '[' {
							return routesProperty{arrayStart: k}, true
						}
						if k < len(src) && isIdentStart(src[k]) {
							return routesProperty{arrayStart: -1, ident: readIdent(src, k)}, true
						}
					case ',', '}':
						return routesProperty{arrayStart: -1, ident: word}, true
					}
				}
			}
			prev = 'a'
			i = end
		default:
			prev = c
			i++
		}
	}
	return routesProperty{}, false
}

// matchClose returns the offset of the bracket closing the one at open.
func matchClose(src string, open int) (int, error) {
	depth := 0
	i := open
	var prev byte
	for i < len(src) {
		c := src[i]
		switch {
		case c == '/' && i+1 < len(src) && (src[i+1] == '/' || src[i+1] == '*'):
			i = skipComment(src, i)
			continue
		case c == '\'' || c == '"' || c == '`':
			i = skipString(src, i)
			prev = '"'
			continue
		case c == '/' && regexAllowed(prev):
			i = skipRegex(src, i)
			prev = '"'
			continue
		case c == '[' || c == '{' || c == '(':
			depth++
		case c == ']' || c == '}' || c == ')':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
		if !isSpace(c) {
			prev = c
		}
		i++
	}
	return 0, fmt.Errorf("unbalanced %q at offset %d", src[open], open)
}

// skipString returns the offset just past the string literal starting at i.
func skipString(src string, i int) int {
	quote := src[i]
	i++
	for i < len(src) {
		switch c := src[i]; {
		case c == '\\':
			i += 2
			continue
		case c == quote:
			return i + 1
		case quote == '`' && c == '$' && i+1 < len(src) && src[i+1] == '{':
			end, err := matchClose(src, i+1)
			if err != nil {
				return len(src)
			}
			i = end + 1
			continue
		case c == '\n' && quote != '`':
			return i
		}
		i++
	}
	return len(src)
}

// regexAllowed reports whether a '/' after the significant character prev
// starts a regular expression literal rather than a division. prev is 0 at
// the start of input.
func regexAllowed(prev byte) bool {
	return prev == 0 || strings.IndexByte("(,=:[!&|?{};", prev) >= 0
}

// skipRegex returns the offset just past the regular expression literal
// starting at i, flags included. A '/' inside a character class does not
// end the literal.
func skipRegex(src string, i int) int {
	inClass := false
	for i++; i < len(src); i++ {
		switch c := src[i]; {
		case c == '\\':
			i++
		case c == '\n':
			return i
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			i++
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}
			return i
		}
	}
	return len(src)
}

func skipComment(src string, i int) int {
	if src[i+1] == '/' {
		if nl := strings.IndexByte(src[i:], '\n'); nl >= 0 {
			return i + nl + 1
		}
		return len(src)
	}
	if end := strings.Index(src[i+2:], "*/"); end >= 0 {
		return i + 2 + end + 2
	}
	return len(src)
}

// skipTrivia returns the offset of the next character that is neither
// whitespace nor part of a comment.
func skipTrivia(src string, i int) int {
	for i < len(src) {
		switch {
		case isSpace(src[i]):
			i++
		case src[i] == '/' && i+1 < len(src) && (src[i+1] == '/' || src[i+1] == '*'):
			i = skipComment(src, i)
		default:
			return i
		}
	}
	return i
}

func lineIndent(src string, pos int) string {
	start := strings.LastIndexByte(src[:pos], '\n') + 1
	end := start
	for end < pos && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return src[start:end]
}

func readIdent(src string, i int) string {
	j := i
	for j < len(src) && isIdentPart(src[j]) {
		j++
	}
	return src[i:j]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
