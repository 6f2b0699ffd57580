package sysmem

import (
	"context"
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/stretchr/testify/assert"
)

func fixedReader(total uint64, err error) Reader {
	return func(context.Context) (*mem.VirtualMemoryStat, error) {
		if err != nil {
			return nil, err
		}
		return &mem.VirtualMemoryStat{Total: total}, nil
	}
}

func TestTotalKB(t *testing.T) {
	tests := []struct {
		name string
		read Reader
		want int64
	}{
		{"16 GiB host", fixedReader(16<<30, nil), 16 * 1024 * 1024},
		{"read error", fixedReader(0, errors.New("boom")), DefaultMemoryKB},
		{"zero total", fixedReader(0, nil), DefaultMemoryKB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProbe(WithReader(tt.read))
			assert.Equal(t, tt.want, p.TotalKB(context.Background()))
		})
	}
}

func TestRecommendedHeapMB(t *testing.T) {
	tests := []struct {
		total uint64
		want  int
	}{
		{2 << 30, MinHeapMB},
		{16 << 30, 4096},
		{64 << 30, MaxHeapMB},
	}

	for _, tt := range tests {
		p := NewProbe(WithReader(fixedReader(tt.total, nil)))
		assert.Equal(t, tt.want, p.RecommendedHeapMB(context.Background()))
	}
}

func TestTotalKBLiveHost(t *testing.T) {
	assert.Positive(t, TotalKB())
}
