package route

// ExcludedPaths are the layout roots of the default template. Flatten still
// treats routes at these paths as installable; see FlattenWith.
var ExcludedPaths = []string{"/user", "/"}

// Installable is a route that may be materialized from a block.
type Installable struct {
	Node
	// HasChildren is set when the route declares its own routes list, in
	// which case the block tool must leave the route config alone.
	HasChildren bool
}

// IsExcluded reports whether path is one of ExcludedPaths.
func IsExcluded(path string) bool {
	for _, p := range ExcludedPaths {
		if path == p {
			return true
		}
	}
	return false
}

// Flatten walks routes in pre-order and returns every node that has both a
// path and a component. Nodes with a routes list are always descended into,
// whether or not they qualify themselves.
//
// Routes at ExcludedPaths are returned as well. Generated projects have
// always received blocks for them, so the default keeps doing that.
func Flatten(routes []Node) []Installable {
	return FlattenWith(routes, false)
}

// FlattenWith is Flatten with the option to leave routes at ExcludedPaths
// out of the result. Their children are still visited.
func FlattenWith(routes []Node, skipExcluded bool) []Installable {
	var out []Installable
	for _, r := range routes {
		if r.Component != "" && r.Path != "" && !(skipExcluded && IsExcluded(r.Path)) {
			out = append(out, Installable{
				Node:        r.Clone(),
				HasChildren: r.HasRoutes(),
			})
		}
		if r.HasRoutes() {
			out = append(out, FlattenWith(r.Routes, skipExcluded)...)
		}
	}
	return out
}
