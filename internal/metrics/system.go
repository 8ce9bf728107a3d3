package metrics

import (
	"fmt"
	"math"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// SampleSystem reads host utilization: CPU as the 1-minute load average
// normalized by logical core count, memory as used percent. Both are
// rounded percentages.
func SampleSystem() (cpuPct, memPct int64, err error) {
	avg, err := load.Avg()
	if err != nil {
		return 0, 0, fmt.Errorf("load average: %w", err)
	}
	cores, err := cpu.Counts(true)
	if err != nil {
		return 0, 0, fmt.Errorf("cpu counts: %w", err)
	}
	if cores == 0 {
		cores = 1
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, 0, fmt.Errorf("virtual memory: %w", err)
	}
	cpuPct = int64(math.Round(avg.Load1 / float64(cores) * 100))
	memPct = int64(math.Round(vm.UsedPercent))
	return cpuPct, memPct, nil
}
