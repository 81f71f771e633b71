package services

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v4/mem"
)

// HeapStats is a snapshot of heap memory in bytes.
type HeapStats struct {
	Used  uint64
	Total uint64
}

// MemoryReader reports the current heap usage of the process.
type MemoryReader interface {
	ReadHeap() HeapStats
}

// RuntimeMemoryReader reads heap usage from the Go runtime. Used is the live
// heap (HeapAlloc) and Total is the heap obtained from the OS (HeapSys).
type RuntimeMemoryReader struct{}

func (RuntimeMemoryReader) ReadHeap() HeapStats {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return HeapStats{Used: stats.HeapAlloc, Total: stats.HeapSys}
}

// SystemSnapshot describes the host the process runs on. Memory is in bytes.
type SystemSnapshot struct {
	Platform    string
	CPUs        int
	TotalMemory uint64
	FreeMemory  uint64
}

// SystemReader reports host information for the startup probe.
type SystemReader interface {
	ReadSystem(ctx context.Context) (SystemSnapshot, error)
}

// HostSystemReader reads host memory through gopsutil.
type HostSystemReader struct{}

func (HostSystemReader) ReadSystem(ctx context.Context) (SystemSnapshot, error) {
	snapshot := SystemSnapshot{
		Platform: runtime.GOOS,
		CPUs:     runtime.NumCPU(),
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return snapshot, err
	}
	snapshot.TotalMemory = vm.Total
	snapshot.FreeMemory = vm.Available
	return snapshot, nil
}
