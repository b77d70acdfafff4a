package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseSource_OwnerRepo(t *testing.T) {
	src, err := ParseSource("ant-design/ant-design-pro")
	if err != nil {
		t.Fatalf("ParseSource() error: %v", err)
	}
	if src.Type != SourceTypeGit {
		t.Errorf("Type = %q, want %q", src.Type, SourceTypeGit)
	}
	if src.Host != "github.com" {
		t.Errorf("Host = %q, want %q", src.Host, "github.com")
	}
	if src.Owner != "ant-design" {
		t.Errorf("Owner = %q, want %q", src.Owner, "ant-design")
	}
	if src.Repo != "ant-design-pro" {
		t.Errorf("Repo = %q, want %q", src.Repo, "ant-design-pro")
	}
	if src.CloneURL != "https://github.com/ant-design/ant-design-pro.git" {
		t.Errorf("CloneURL = %q, want %q", src.CloneURL, "https://github.com/ant-design/ant-design-pro.git")
	}
}

func TestParseSource_SSHUrl(t *testing.T) {
	src, err := ParseSource("git@gitee.com:ant-design/ant-design-pro.git")
	if err != nil {
		t.Fatalf("ParseSource() error: %v", err)
	}
	if src.Type != SourceTypeGit {
		t.Errorf("Type = %q, want %q", src.Type, SourceTypeGit)
	}
	if src.Host != "gitee.com" {
		t.Errorf("Host = %q, want %q", src.Host, "gitee.com")
	}
	if src.Owner != "ant-design" || src.Repo != "ant-design-pro" {
		t.Errorf("Owner/Repo = %q/%q, want ant-design/ant-design-pro", src.Owner, src.Repo)
	}
	if src.CloneURL != "git@gitee.com:ant-design/ant-design-pro.git" {
		t.Errorf("CloneURL = %q, unexpected", src.CloneURL)
	}
}

func TestParseSource_HTTPSGitee(t *testing.T) {
	src, err := ParseSource("https://gitee.com/ant-design/ant-design-pro")
	if err != nil {
		t.Fatalf("ParseSource() error: %v", err)
	}
	if src.Host != "gitee.com" {
		t.Errorf("Host = %q, want %q", src.Host, "gitee.com")
	}
	if src.CloneURL != "https://gitee.com/ant-design/ant-design-pro.git" {
		t.Errorf("CloneURL = %q, want %q", src.CloneURL, "https://gitee.com/ant-design/ant-design-pro.git")
	}
}

func TestParseSource_HTTPSDeepPath(t *testing.T) {
	input := "https://git.example.com/group/sub/template.git"
	src, err := ParseSource(input)
	if err != nil {
		t.Fatalf("ParseSource() error: %v", err)
	}
	if src.CloneURL != input {
		t.Errorf("CloneURL = %q, want %q", src.CloneURL, input)
	}
	if src.Owner != "" {
		t.Errorf("Owner = %q, want empty", src.Owner)
	}
}

func TestParseSource_LocalPath(t *testing.T) {
	dir := t.TempDir()

	src, err := ParseSource(dir)
	if err != nil {
		t.Fatalf("ParseSource() error: %v", err)
	}
	if src.Type != SourceTypeLocal {
		t.Errorf("Type = %q, want %q", src.Type, SourceTypeLocal)
	}
	if src.CloneURL != dir {
		t.Errorf("CloneURL = %q, want %q", src.CloneURL, dir)
	}
}

func TestParseSource_LocalRelativePath(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "template"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	src, err := ParseSource("./template")
	if err != nil {
		t.Fatalf("ParseSource() error: %v", err)
	}
	if src.Type != SourceTypeLocal {
		t.Errorf("Type = %q, want %q", src.Type, SourceTypeLocal)
	}
	if filepath.Base(src.CloneURL) != "template" || !filepath.IsAbs(src.CloneURL) {
		t.Errorf("CloneURL = %q, want an absolute path to template", src.CloneURL)
	}
}

func TestParseSource_LocalErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ParseSource(filepath.Join(dir, "missing")); err == nil {
		t.Error("ParseSource() should fail for a missing directory")
	}
	if _, err := ParseSource(file); err == nil {
		t.Error("ParseSource() should fail for a file")
	}
}

func TestParseSource_Empty(t *testing.T) {
	if _, err := ParseSource("  "); err == nil {
		t.Error("ParseSource() should fail for empty input")
	}
}

func TestParseSource_Invalid(t *testing.T) {
	if _, err := ParseSource("not a source"); err == nil {
		t.Error("ParseSource() should fail for unrecognized input")
	}
}

func TestApplyCloneOverride(t *testing.T) {
	overrides := map[string]string{
		"https://github.com/ant-design/ant-design-pro.git": "git@git.example.com:mirror/ant-design-pro.git",
	}

	src, err := ParseSource("ant-design/ant-design-pro")
	if err != nil {
		t.Fatal(err)
	}
	ApplyCloneOverride(src, overrides)
	if src.CloneURL != "git@git.example.com:mirror/ant-design-pro.git" {
		t.Errorf("CloneURL = %q, want the override", src.CloneURL)
	}

	local := &ParsedSource{Type: SourceTypeLocal, CloneURL: "https://github.com/ant-design/ant-design-pro.git"}
	ApplyCloneOverride(local, overrides)
	if local.CloneURL != "https://github.com/ant-design/ant-design-pro.git" {
		t.Error("local sources should not be overridden")
	}
}
