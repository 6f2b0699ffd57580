package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mcl/internal/installer"
	"mcl/internal/theme"
)

const (
	padding  = 2
	maxWidth = 80
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render

type progressMsg struct {
	fraction float64
	message  string
}

type completeMsg struct {
	success bool
	detail  string
}

type runFinishedMsg struct{}

// ProgressModel renders provisioning progress as a bar with the latest status line
type ProgressModel struct {
	title    string
	progress progress.Model
	message  string
	done     bool
	success  bool
	detail   string
	cancel   context.CancelFunc
	quitting bool
}

// NewProgressModel creates the model; cancel is called when the user interrupts
func NewProgressModel(title string, cancel context.CancelFunc) ProgressModel {
	prog := progress.New(
		progress.WithGradient(string(theme.Accent), string(theme.Primary)),
		progress.WithWidth(40),
	)

	return ProgressModel{
		title:    title,
		progress: prog,
		message:  "Starting...",
		cancel:   cancel,
	}
}

func (m ProgressModel) Init() tea.Cmd {
	return nil
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.cancel != nil {
				m.cancel()
			}
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.progress.Width = min(msg.Width-padding*2-4, maxWidth)
		return m, nil

	case progressMsg:
		m.message = msg.message
		return m, m.progress.SetPercent(msg.fraction)

	case completeMsg:
		m.done = true
		m.success = msg.success
		m.detail = msg.detail
		return m, nil

	case runFinishedMsg:
		m.quitting = true
		return m, tea.Quit

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	default:
		return m, nil
	}
}

func (m ProgressModel) View() string {
	if m.quitting {
		return ""
	}

	pad := strings.Repeat(" ", padding)
	return "\n" +
		pad + theme.Subtitle.Render(m.title) + "\n\n" +
		pad + m.progress.View() + "\n" +
		pad + helpStyle(m.message) + "\n"
}

// Outcome reports the completion event the model received, if any
func (m ProgressModel) Outcome() (done, success bool, detail string) {
	return m.done, m.success, m.detail
}

// ProgressSink forwards provisioning events to a running bubbletea program
type ProgressSink struct {
	program *tea.Program
}

func (s *ProgressSink) OnProgress(fraction float64, message string) {
	s.program.Send(progressMsg{fraction: fraction, message: message})
}

func (s *ProgressSink) OnComplete(success bool, detail string) {
	s.program.Send(completeMsg{success: success, detail: detail})
}

// RunWithProgress runs fn while rendering its events as a progress bar.
// Interrupting the UI cancels the context passed to fn.
func RunWithProgress(ctx context.Context, title string, fn func(context.Context, installer.EventSink) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewProgressModel(title, cancel))
	sink := &ProgressSink{program: p}

	var (
		wg     sync.WaitGroup
		runErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = fn(ctx, sink)
		p.Send(runFinishedMsg{})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		wg.Wait()
		return fmt.Errorf("progress display failed: %w", err)
	}

	wg.Wait()
	return runErr
}

// LineSink writes each event on its own line, for output that is not a terminal
type LineSink struct {
	mu  sync.Mutex
	out io.Writer
}

// NewLineSink creates a LineSink writing to out
func NewLineSink(out io.Writer) *LineSink {
	return &LineSink{out: out}
}

func (s *LineSink) OnProgress(fraction float64, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "[%3.0f%%] %s\n", fraction*100, message)
}

func (s *LineSink) OnComplete(success bool, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if success {
		fmt.Fprintln(s.out, theme.SuccessMessage("Installed: "+detail))
		return
	}
	fmt.Fprintln(s.out, theme.ErrorMessage(detail))
}
