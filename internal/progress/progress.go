// Package progress renders simulation progress as a terminal progress bar.
package progress

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/pokerev/internal/uth"
)

const maxBarWidth = 60

// UpdateMsg carries a progress snapshot into the model.
type UpdateMsg struct {
	Label    string
	Progress uth.Progress
}

// DoneMsg ends the program.
type DoneMsg struct{}

// Model is the Bubble Tea model for the progress display
type Model struct {
	title       string
	label       string
	current     uth.Progress
	bar         progress.Model
	onInterrupt context.CancelFunc

	done        bool
	interrupted bool
}

// NewModel creates a progress model. onInterrupt is called when the user
// presses ctrl+c, since the program owns the terminal while it runs.
func NewModel(title string, onInterrupt context.CancelFunc) Model {
	return Model{
		title:       title,
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(maxBarWidth)),
		onInterrupt: onInterrupt,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case UpdateMsg:
		m.label = msg.Label
		m.current = msg.Progress

	case DoneMsg:
		m.done = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.bar.Width = max(10, min(msg.Width-4, maxBarWidth))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.interrupted = true
			if m.onInterrupt != nil {
				m.onInterrupt()
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the title, the bar and the counters
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.title))
	if m.label != "" {
		b.WriteString(" ")
		b.WriteString(LabelStyle.Render(m.label))
	}
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(m.current.Fraction()))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(Summary(m.current)))
	b.WriteString("\n")
	if m.interrupted {
		b.WriteString(InfoStyle.Render("cancelling..."))
		b.WriteString("\n")
	}
	return b.String()
}

// Summary formats counters and an estimate of the time remaining.
func Summary(p uth.Progress) string {
	s := fmt.Sprintf("%d/%d  %5.1f%%  %s", p.Done, p.Total, 100*p.Fraction(), p.Elapsed.Round(time.Millisecond))
	if p.Done > 0 && p.Done < p.Total {
		remaining := time.Duration(float64(p.Elapsed) * float64(p.Total-p.Done) / float64(p.Done))
		s += fmt.Sprintf("  ~%s left", remaining.Round(time.Second))
	}
	return s
}

// Bar runs a progress model in its own Bubble Tea program.
type Bar struct {
	program *tea.Program
	done    chan struct{}
	err     error
}

// Start launches the program writing to out.
func Start(title string, out io.Writer, onInterrupt context.CancelFunc) *Bar {
	b := &Bar{
		program: tea.NewProgram(NewModel(title, onInterrupt), tea.WithOutput(out)),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(b.done)
		_, b.err = b.program.Run()
	}()
	return b
}

// Update sends a snapshot to the display. It is safe to call from the
// simulator's progress callback.
func (b *Bar) Update(label string, p uth.Progress) {
	b.program.Send(UpdateMsg{Label: label, Progress: p})
}

// Finish stops the program and waits for the terminal to be restored.
func (b *Bar) Finish() error {
	b.program.Send(DoneMsg{})
	<-b.done
	return b.err
}

// Reporter prints one line per update for terminals without the bar.
type Reporter struct {
	out io.Writer
}

// NewReporter creates a plain progress reporter.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Update prints the snapshot, overwriting the previous line.
func (r *Reporter) Update(label string, p uth.Progress) {
	fmt.Fprintf(r.out, "\r%s %s", label, Summary(p))
	if p.Done >= p.Total {
		fmt.Fprintln(r.out)
	}
}
