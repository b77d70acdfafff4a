package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const markdownWrap = 80

// RenderMarkdown renders md for the terminal. Rendering falls back to the
// raw text if glamour cannot build a renderer.
func RenderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(markdownWrap),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// NextSteps returns the markdown shown after a project is created.
func NextSteps(projectName string, commands []string) string {
	var b strings.Builder
	b.WriteString("## 🎉 " + projectName + " is ready\n\n")
	b.WriteString("Next steps:\n\n```sh\n")
	for _, c := range commands {
		b.WriteString(c + "\n")
	}
	b.WriteString("```\n")
	return b.String()
}
