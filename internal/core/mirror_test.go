package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/barysiuk/procreate/internal/testutil"
)

func TestHostProber_Fastest(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer broken.Close()

	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("request method = %s, want HEAD", r.Method)
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer healthy.Close()

	prober := NewHostProber(testutil.NewTestLogger())

	got, err := prober.Fastest(context.Background(), []string{broken.URL, healthy.URL})
	if err != nil {
		t.Fatalf("Fastest() error: %v", err)
	}
	if got != healthy.URL {
		t.Errorf("Fastest() = %q, want %q", got, healthy.URL)
	}
}

func TestHostProber_NoneReachable(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer broken.Close()

	prober := NewHostProber(testutil.NewTestLogger())

	if _, err := prober.Fastest(context.Background(), []string{broken.URL}); err == nil {
		t.Error("Fastest() with no healthy host should fail")
	}
	if _, err := prober.Fastest(context.Background(), nil); err == nil {
		t.Error("Fastest() with no candidates should fail")
	}
}

func TestTemplateCloneURL(t *testing.T) {
	tests := map[string]string{
		"https://github.com":            githubTemplateURL,
		"https://gitee.com":             giteeTemplateURL,
		"https://github.com.cnpmjs.org": giteeTemplateURL,
		"":                              githubTemplateURL,
		"gitee.com":                     giteeTemplateURL,
	}
	for in, want := range tests {
		if got := TemplateCloneURL(in); got != want {
			t.Errorf("TemplateCloneURL(%q) = %q, want %q", in, got, want)
		}
	}
}
