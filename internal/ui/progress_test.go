package ui

import (
	"bytes"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcl/internal/installer"
)

var (
	_ installer.EventSink = (*ProgressSink)(nil)
	_ installer.EventSink = (*LineSink)(nil)
)

func TestProgressModelTracksEvents(t *testing.T) {
	var m tea.Model = NewProgressModel("Installing Java 17", nil)

	m, _ = m.Update(progressMsg{fraction: 0.5, message: "Downloading... 1.0MB / 2.0MB"})
	assert.Contains(t, m.View(), "Downloading... 1.0MB / 2.0MB")
	assert.Contains(t, m.View(), "Installing Java 17")

	m, cmd := m.Update(completeMsg{success: true, detail: "/opt/java/zulu17/bin/java"})
	assert.Nil(t, cmd)
	done, success, detail := m.(ProgressModel).Outcome()
	assert.True(t, done)
	assert.True(t, success)
	assert.Equal(t, "/opt/java/zulu17/bin/java", detail)

	m, cmd = m.Update(runFinishedMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestProgressModelCtrlCCancels(t *testing.T) {
	cancelled := false
	var m tea.Model = NewProgressModel("x", func() { cancelled = true })

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, cancelled)
}

func TestLineSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewLineSink(&buf)

	s.OnProgress(0.1, "Fetching Java version information")
	s.OnComplete(false, "no Java 8 package found for macos/arm64")

	out := buf.String()
	assert.Contains(t, out, "[ 10%] Fetching Java version information")
	assert.Contains(t, out, "no Java 8 package found for macos/arm64")
}

func TestSpinnerModelReportsError(t *testing.T) {
	var m tea.Model = newSpinnerModel("Fetching...")
	assert.Contains(t, m.View(), "Fetching...")

	m, cmd := m.Update(spinnerFinishedMsg{err: assert.AnError})
	require.NotNil(t, cmd)
	assert.Equal(t, assert.AnError, m.(spinnerModel).err)
	assert.Empty(t, m.View())
}
