package platform

import (
	"context"
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v3/mem"
)

func TestVirtualMemory(t *testing.T) {
	v := &VirtualMemory{query: func(context.Context) (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{Total: 4294967296}, nil
	}}
	total, err := v.TotalMemory(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if total != 4294967296 {
		t.Errorf("Expected 4294967296, got %d", total)
	}
}

func TestVirtualMemory_Errors(t *testing.T) {
	v := &VirtualMemory{query: func(context.Context) (*mem.VirtualMemoryStat, error) {
		return nil, errors.New("open /proc/meminfo: permission denied")
	}}
	if _, err := v.TotalMemory(context.Background()); err == nil {
		t.Error("Expected error, got nil")
	}

	v = &VirtualMemory{query: func(context.Context) (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{}, nil
	}}
	if _, err := v.TotalMemory(context.Background()); !errors.Is(err, ErrMemoryUnknown) {
		t.Errorf("Expected ErrMemoryUnknown, got %v", err)
	}
}

func TestRuntimeMemory(t *testing.T) {
	r := &RuntimeMemory{total: func() uint64 { return 0 }}
	if _, err := r.TotalMemory(context.Background()); !errors.Is(err, ErrMemoryUnknown) {
		t.Errorf("Expected ErrMemoryUnknown, got %v", err)
	}

	r = &RuntimeMemory{total: func() uint64 { return 2 << 30 }}
	if v, err := r.TotalMemory(context.Background()); err != nil || v != 2<<30 {
		t.Errorf("Expected %d, got %d (%v)", 2<<30, v, err)
	}
}

func TestNewMemoryInfo(t *testing.T) {
	for _, source := range []string{"", MemorySourceGopsutil, MemorySourceRuntime} {
		if _, err := NewMemoryInfo(source); err != nil {
			t.Errorf("NewMemoryInfo(%q) failed: %v", source, err)
		}
	}
	if _, err := NewMemoryInfo("sysfs"); err == nil {
		t.Error("Expected error for unknown source, got nil")
	}
}
