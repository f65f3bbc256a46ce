package platform

import (
	"context"
	"errors"
	"fmt"

	"github.com/pbnjay/memory"
	"github.com/shirou/gopsutil/v3/mem"
)

// Memory sources
const (
	MemorySourceGopsutil = "gopsutil"
	MemorySourceRuntime  = "runtime"
)

// ErrMemoryUnknown is returned when the platform could not tell the memory size.
var ErrMemoryUnknown = errors.New("total memory could not be determined")

// MemoryInfo reports total physical memory in bytes.
type MemoryInfo interface {
	TotalMemory(ctx context.Context) (uint64, error)
}

// NewMemoryInfo returns the memory source by its name.
func NewMemoryInfo(source string) (MemoryInfo, error) {
	switch source {
	case "", MemorySourceGopsutil:
		return NewVirtualMemory(), nil
	case MemorySourceRuntime:
		return NewRuntimeMemory(), nil
	default:
		return nil, fmt.Errorf("unknown memory source: %q", source)
	}
}

// VirtualMemory reads the system memory stats via gopsutil
// (/proc/meminfo on Linux and Android, sysctl on BSD and macOS).
type VirtualMemory struct {
	query func(context.Context) (*mem.VirtualMemoryStat, error)
}

func NewVirtualMemory() *VirtualMemory {
	return &VirtualMemory{query: mem.VirtualMemoryWithContext}
}

func (v *VirtualMemory) TotalMemory(ctx context.Context) (uint64, error) {
	stat, err := v.query(ctx)
	if err != nil {
		return 0, fmt.Errorf("virtual memory: %w", err)
	}
	if stat == nil || stat.Total == 0 {
		return 0, ErrMemoryUnknown
	}
	return stat.Total, nil
}

// RuntimeMemory is a thin wrapper for "github.com/pbnjay/memory",
// which answers 0 when the size is not accessible.
type RuntimeMemory struct {
	total func() uint64
}

func NewRuntimeMemory() *RuntimeMemory { return &RuntimeMemory{total: memory.TotalMemory} }

func (r *RuntimeMemory) TotalMemory(context.Context) (uint64, error) {
	if v := r.total(); v > 0 {
		return v, nil
	}
	return 0, ErrMemoryUnknown
}
