package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/barysiuk/procreate/internal/core"
	"github.com/barysiuk/procreate/internal/ui"
)

// resolveTargetDir resolves the --dir flag or falls back to cwd.
func resolveTargetDir(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("dir")
	if dir != "" {
		return filepath.Abs(dir)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return cwd, nil
}

// isInteractive reports whether prompts can be shown.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// relPath returns path relative to base when it lies below it.
func relPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// printToolOutput shows the captured output of a failed tool, if any.
func printToolOutput(out *ui.Printer, err error) {
	var output string
	var blockErr *core.BlockInstallError
	var depErr *core.DependencyInstallError
	switch {
	case errors.As(err, &blockErr):
		output = blockErr.Output
	case errors.As(err, &depErr):
		output = depErr.Output
	}
	if output == "" {
		return
	}
	for _, line := range strings.Split(output, "\n") {
		out.Dim(line)
	}
}

// printCloneHints shows how a failed template clone can be fixed.
func printCloneHints(out *ui.Printer, err error) {
	ce, ok := core.IsCloneError(err)
	if !ok {
		return
	}
	lines := []string{"$ " + ce.Command}
	for _, hint := range ce.Hints {
		lines = append(lines, "- "+hint)
	}
	out.Error(ce.Kind.String())
	out.Box(strings.Join(lines, "\n"))
}
