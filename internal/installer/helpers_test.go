package installer

import (
	"archive/zip"
	"bytes"
	"io/fs"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type zipEntry struct {
	name string
	body string
	mode uint32
}

// buildZip creates an in-memory archive; names ending in "/" become directories
func buildZip(t *testing.T, entries []zipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		hdr := &zip.FileHeader{Name: e.name, Method: zip.Deflate}
		if e.mode != 0 {
			hdr.SetMode(fs.FileMode(e.mode))
		}
		w, err := zw.CreateHeader(hdr)
		require.NoError(t, err)
		if e.body != "" {
			_, err = w.Write([]byte(e.body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

type progressEvent struct {
	fraction float64
	message  string
}

type completion struct {
	success bool
	detail  string
}

// recordingSink captures every event a run emits
type recordingSink struct {
	mu          sync.Mutex
	events      []progressEvent
	completions []completion
}

func (r *recordingSink) OnProgress(fraction float64, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, progressEvent{fraction, message})
}

func (r *recordingSink) OnComplete(success bool, detail string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completions = append(r.completions, completion{success, detail})
}

func (r *recordingSink) fractions() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, len(r.events))
	for i, e := range r.events {
		out[i] = e.fraction
	}
	return out
}

func (r *recordingSink) record(fraction float64, message string) {
	r.OnProgress(fraction, message)
}

func requireNonDecreasing(t *testing.T, fractions []float64) {
	t.Helper()
	for i, f := range fractions {
		require.GreaterOrEqual(t, f, 0.0)
		require.LessOrEqual(t, f, 1.0)
		if i > 0 {
			require.GreaterOrEqual(t, f, fractions[i-1], "fraction %d went backwards", i)
		}
	}
}
