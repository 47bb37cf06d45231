// Package sysinfo reports on the host's running processes.
package sysinfo

import (
	"context"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/shirou/gopsutil/v4/process"
)

// ProcessInfo is a snapshot of one process.
type ProcessInfo struct {
	PID        int32
	Name       string
	CPUPercent float64
	MemoryKB   uint64 // resident set size
}

// Lister reads the process table with gopsutil.
type Lister struct{}

// New creates a Lister.
func New() *Lister {
	return &Lister{}
}

// Top returns up to n processes ordered by CPU usage, highest first.
// Processes that exit while being inspected are reported with whatever
// fields could still be read.
func (l *Lister) Top(ctx context.Context, n int) ([]ProcessInfo, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list processes")
	}

	infos := make([]ProcessInfo, 0, len(procs))
	for _, p := range procs {
		info := ProcessInfo{PID: p.Pid}
		if name, err := p.NameWithContext(ctx); err == nil {
			info.Name = name
		}
		if cpu, err := p.CPUPercentWithContext(ctx); err == nil {
			info.CPUPercent = cpu
		}
		if mem, err := p.MemoryInfoWithContext(ctx); err == nil && mem != nil {
			info.MemoryKB = mem.RSS / 1024
		}
		infos = append(infos, info)
	}

	return TopN(infos, n), nil
}

// TopN sorts infos by CPU usage, highest first, and keeps the first n.
// Ties keep their original order.
func TopN(infos []ProcessInfo, n int) []ProcessInfo {
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].CPUPercent > infos[j].CPUPercent
	})
	if len(infos) > n {
		infos = infos[:n]
	}
	return infos
}
