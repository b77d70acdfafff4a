package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// Spinner reports long-running steps on a terminal. It implements
// core.Progress: each step is started, then marked succeeded or failed.
// Off a terminal it prints one line per state change instead of animating.
type Spinner struct {
	mu      sync.Mutex
	out     io.Writer
	isTTY   bool
	width   int
	program *tea.Program
	quitCh  chan struct{}
}

type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
}

type msgQuit struct{}

func newSpinnerModel(message string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return spinnerModel{
		spinner: s,
		message: message,
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case msgQuit:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), DimStyle.Render(m.message))
}

// NewSpinner creates a spinner on stderr.
func NewSpinner() *Spinner {
	fd := int(os.Stderr.Fd())
	s := &Spinner{out: os.Stderr, isTTY: term.IsTerminal(fd)}
	if s.isTTY {
		if w, _, err := term.GetSize(fd); err == nil {
			s.width = w
		}
	}
	return s
}

// NewPlainSpinner creates a spinner that never animates.
func NewPlainSpinner(w io.Writer) *Spinner {
	return &Spinner{out: w}
}

// Start shows label as the running step.
func (s *Spinner) Start(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	label = s.fit(label)

	if !s.isTTY {
		fmt.Fprintln(s.out, DimStyle.Render(label))
		return
	}

	s.quitCh = make(chan struct{})
	s.program = tea.NewProgram(newSpinnerModel(label), tea.WithOutput(s.out), tea.WithInput(nil))
	go func(p *tea.Program, done chan struct{}) {
		_, _ = p.Run()
		close(done)
	}(s.program, s.quitCh)
}

// Succeed ends the running step and marks label as done.
func (s *Spinner) Succeed(label string) {
	s.finish(SuccessStyle.Render("✓ " + s.fit(label)))
}

// Fail ends the running step and marks label as failed.
func (s *Spinner) Fail(label string) {
	s.finish(ErrorStyle.Render("✗ " + s.fit(label)))
}

func (s *Spinner) finish(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	fmt.Fprintln(s.out, line)
}

func (s *Spinner) stopLocked() {
	if s.program == nil {
		return
	}
	s.program.Send(msgQuit{})
	<-s.quitCh
	s.program = nil
}

// fit truncates label to the terminal width, leaving room for the glyph.
func (s *Spinner) fit(label string) string {
	if s.width <= 4 {
		return label
	}
	return ansi.Truncate(label, s.width-4, "…")
}
