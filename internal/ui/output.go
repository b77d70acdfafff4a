package ui

import (
	"fmt"
	"io"
	"strings"
)

// Printer writes styled lines to a writer. Commands create one over
// cmd.OutOrStdout() so output is captured in tests.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Title prints a bold header line.
func (p *Printer) Title(text string) {
	fmt.Fprintln(p.w, TitleStyle.Render(text))
}

// Success prints a line with a check mark.
func (p *Printer) Success(text string) {
	fmt.Fprintln(p.w, SuccessStyle.Render("✓ "+text))
}

// Error prints a line with a cross.
func (p *Printer) Error(text string) {
	fmt.Fprintln(p.w, ErrorStyle.Render("✗ "+text))
}

// Warning prints a warning line.
func (p *Printer) Warning(text string) {
	fmt.Fprintln(p.w, WarningStyle.Render("! "+text))
}

// Dim prints indented secondary text.
func (p *Printer) Dim(text string) {
	fmt.Fprintln(p.w, DimStyle.Render("  "+text))
}

// Command prints a command line the user can run.
func (p *Printer) Command(text string) {
	fmt.Fprintln(p.w, CommandStyle.Render("  $ "+text))
}

// KeyValue prints "key  value" with the key padded to width.
func (p *Printer) KeyValue(key, value string, width int) {
	pad := ""
	if n := width - len(key); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	fmt.Fprintf(p.w, "%s%s  %s\n", KeyStyle.Render(key), pad, value)
}

// Box prints text in a rounded border.
func (p *Printer) Box(text string) {
	fmt.Fprintln(p.w, BoxStyle.Render(text))
}

// Print prints plain text.
func (p *Printer) Print(text string) {
	fmt.Fprintln(p.w, text)
}

// Printf prints formatted plain text.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

// Line prints an empty line.
func (p *Printer) Line() {
	fmt.Fprintln(p.w)
}
