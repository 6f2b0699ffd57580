// Package sysmem reports host memory for JVM heap sizing.
package sysmem

import (
	"context"
	"errors"

	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"

	"mcl/internal/logging"
)

// DefaultMemoryKB is reported when the host total cannot be read (8 GiB)
const DefaultMemoryKB int64 = 8 * 1024 * 1024

// Heap recommendation bounds in MB
const (
	MinHeapMB = 1024
	MaxHeapMB = 8192
)

// Reader returns virtual memory statistics
type Reader func(ctx context.Context) (*mem.VirtualMemoryStat, error)

// Probe reads total system memory
type Probe struct {
	read   Reader
	logger *zap.Logger
}

// Option configures a Probe
type Option func(*Probe)

// WithReader replaces the gopsutil reader
func WithReader(read Reader) Option {
	return func(p *Probe) {
		if read != nil {
			p.read = read
		}
	}
}

// WithLogger sets the probe's logger
func WithLogger(logger *zap.Logger) Option {
	return func(p *Probe) {
		p.logger = logging.OrNop(logger).Named("sysmem")
	}
}

// NewProbe creates a Probe backed by gopsutil
func NewProbe(opts ...Option) *Probe {
	p := &Probe{
		read:   mem.VirtualMemoryWithContext,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TotalKB returns total physical memory in KB, or DefaultMemoryKB when it cannot be read
func (p *Probe) TotalKB(ctx context.Context) int64 {
	vmem, err := p.read(ctx)
	if err == nil && (vmem == nil || vmem.Total == 0) {
		err = errors.New("memory total unavailable")
	}
	if err != nil {
		p.logger.Warn("failed to get memory info, using default", zap.Error(err))
		return DefaultMemoryKB
	}
	return int64(vmem.Total / 1024)
}

// RecommendedHeapMB suggests a maximum heap of a quarter of memory, clamped to [MinHeapMB, MaxHeapMB]
func (p *Probe) RecommendedHeapMB(ctx context.Context) int {
	mb := int(p.TotalKB(ctx) / 1024 / 4)
	if mb < MinHeapMB {
		return MinHeapMB
	}
	if mb > MaxHeapMB {
		return MaxHeapMB
	}
	return mb
}

// TotalKB reads total memory with a default probe
func TotalKB() int64 {
	return NewProbe().TotalKB(context.Background())
}
