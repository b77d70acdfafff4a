package route

// FilterParents returns the part of the tree that is written back to the
// route config verbatim: 404 routes, redirects, and containers. Containers
// are kept when the tree has no owner component or rootLayout is set, and
// their children are filtered the same way (nested lists carry no owner
// component of their own). Content leaves are dropped; they come back as
// freshly installed blocks.
//
// Sibling order is preserved. Kept containers always have a non-nil,
// possibly empty, Routes list.
func FilterParents(tree Tree, rootLayout bool) []Node {
	descend := tree.Component == "" || rootLayout

	out := make([]Node, 0, len(tree.Routes))
	for _, r := range tree.Routes {
		switch {
		case r.IsNotFound():
			out = append(out, r.Clone())
		case r.HasRoutes() && descend:
			c := r.Clone()
			c.Routes = FilterParents(Tree{Routes: r.Routes}, false)
			out = append(out, c)
		case r.IsRedirect():
			out = append(out, r.Clone())
		}
	}
	return out
}
