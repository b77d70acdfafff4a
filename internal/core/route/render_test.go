package route

import (
	"encoding/json"
	"testing"
)

func TestRender(t *testing.T) {
	routes := []Node{
		{Path: "/", Component: "../layouts/BasicLayout", Routes: []Node{}},
		{Component: NotFoundComponent},
	}

	got := Render(routes, "  ")
	want := `[
    {
      path: '/',
      component: '../layouts/BasicLayout',
      routes: [],
    },
    {
      component: '404',
    },
  ]`
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRender_Attributes(t *testing.T) {
	routes := []Node{{
		Path: "/admin",
		Name: "it's admin",
		Attrs: []Attr{
			{Key: "authority", Value: []any{"admin", "user"}},
			{Key: "hideInMenu", Value: true},
			{Key: "order", Value: json.Number("3")},
			{Key: "meta-data", Value: map[string]any{"b": nil, "a": "x"}},
		},
		Routes: []Node{{Path: "/admin/sub", Redirect: "/admin"}},
	}}

	got := Render(routes, "")
	want := `[
  {
    path: '/admin',
    name: 'it\'s admin',
    authority: ['admin', 'user'],
    hideInMenu: true,
    order: 3,
    'meta-data': {
      a: 'x',
      b: null,
    },
    routes: [
      {
        path: '/admin/sub',
        redirect: '/admin',
      },
    ],
  },
]`
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRender_Empty(t *testing.T) {
	if got := Render(nil, "    "); got != "[]" {
		t.Errorf("Render(nil) = %q, want %q", got, "[]")
	}
}
