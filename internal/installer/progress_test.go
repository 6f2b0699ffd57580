package installer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonotonicSinkClampsRegressions(t *testing.T) {
	rec := &recordingSink{}
	m := newMonotonicSink(rec)

	m.progress(0.20, "a")
	m.progress(0.50, "b")
	m.progress(0.40, "c")
	m.progress(1.50, "d")

	assert.Equal(t, []float64{0.20, 0.50, 0.50, 1.0}, rec.fractions())
	assert.Equal(t, "c", rec.events[2].message, "messages pass through unchanged")
}

func TestMonotonicSinkNilSink(t *testing.T) {
	m := newMonotonicSink(nil)
	assert.NotPanics(t, func() {
		m.progress(0.5, "x")
		m.complete(true, "done")
	})
}

func TestSinkFuncs(t *testing.T) {
	var gotFraction float64
	var gotSuccess bool

	s := SinkFuncs{
		Progress: func(f float64, _ string) { gotFraction = f },
		Complete: func(ok bool, _ string) { gotSuccess = ok },
	}
	s.OnProgress(0.3, "")
	s.OnComplete(true, "")

	assert.InDelta(t, 0.3, gotFraction, 1e-9)
	assert.True(t, gotSuccess)
	assert.NotPanics(t, func() { SinkFuncs{}.OnProgress(0.1, "") })
}

func TestProgressWriterUnknownSize(t *testing.T) {
	calls := 0
	pw := newProgressWriter(-1, DownloadStage, func(float64, string) { calls++ })

	n, err := pw.Write([]byte("abc"))
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Zero(t, calls)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "fetching_catalog", StateFetchingCatalog.String())
	assert.Equal(t, "done", StateDone.String())
	assert.Equal(t, "unknown", State(99).String())
}
