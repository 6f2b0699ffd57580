package installer

import "sync"

// Batch size after which extraction yields the processor
const FileBatchSize = 10

// ProgressFunc receives an overall fraction in [0,1] and a status message
type ProgressFunc func(fraction float64, message string)

// EventSink consumes the progress and completion events of a provisioning run.
// OnComplete is called exactly once per run.
type EventSink interface {
	OnProgress(fraction float64, message string)
	OnComplete(success bool, detail string)
}

// SinkFuncs adapts a pair of functions to EventSink. Nil fields are ignored.
type SinkFuncs struct {
	Progress func(fraction float64, message string)
	Complete func(success bool, detail string)
}

func (s SinkFuncs) OnProgress(fraction float64, message string) {
	if s.Progress != nil {
		s.Progress(fraction, message)
	}
}

func (s SinkFuncs) OnComplete(success bool, detail string) {
	if s.Complete != nil {
		s.Complete(success, detail)
	}
}

// Stage is the slice of the overall progress range one pipeline step reports into
type Stage struct {
	Start float64
	End   float64
}

var (
	DownloadStage = Stage{Start: 0.20, End: 0.80}
	ExtractStage  = Stage{Start: 0.82, End: 0.95}
)

// At maps a stage-local fraction onto the overall range
func (s Stage) At(local float64) float64 {
	if local < 0 {
		local = 0
	}
	if local > 1 {
		local = 1
	}
	return s.Start + local*(s.End-s.Start)
}

// monotonicSink keeps reported fractions non-decreasing and within [0,1]
type monotonicSink struct {
	mu   sync.Mutex
	sink EventSink
	last float64
}

func newMonotonicSink(sink EventSink) *monotonicSink {
	if sink == nil {
		sink = SinkFuncs{}
	}
	return &monotonicSink{sink: sink}
}

func (m *monotonicSink) progress(fraction float64, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if fraction > 1 {
		fraction = 1
	}
	if fraction < m.last {
		fraction = m.last
	}
	m.last = fraction
	m.sink.OnProgress(fraction, message)
}

func (m *monotonicSink) complete(success bool, detail string) {
	m.sink.OnComplete(success, detail)
}

// progressWriter counts streamed bytes and reports each chunk through a stage
type progressWriter struct {
	total      int64
	downloaded int64
	stage      Stage
	onProgress ProgressFunc
}

func newProgressWriter(total int64, stage Stage, onProgress ProgressFunc) *progressWriter {
	return &progressWriter{
		total:      total,
		stage:      stage,
		onProgress: onProgress,
	}
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n := len(p)
	pw.downloaded += int64(n)

	// Without a known size there is nothing meaningful to report
	if pw.total > 0 && pw.onProgress != nil {
		local := float64(pw.downloaded) / float64(pw.total)
		mbDone := float64(pw.downloaded) / 1024 / 1024
		mbTotal := float64(pw.total) / 1024 / 1024
		pw.onProgress(pw.stage.At(local), formatDownloadMessage(mbDone, mbTotal))
	}

	return n, nil
}
