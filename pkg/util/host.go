package util

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// HostStats is a small host snapshot for health reporting.
type HostStats struct {
	MachineID     string  `json:"machineId,omitempty"`
	OS            string  `json:"os"`
	Platform      string  `json:"platform"`
	UptimeSeconds uint64  `json:"uptimeSeconds"`
	MemTotal      uint64  `json:"memTotal"`
	MemUsedPct    float64 `json:"memUsedPercent"`
	Goroutines    int     `json:"goroutines"`
}

// GetHostStats collects what gopsutil can read; unreadable values stay zero.
func GetHostStats() HostStats {
	s := HostStats{MachineID: GetMachineID(), OS: runtime.GOOS, Goroutines: runtime.NumGoroutine()}
	if info, err := host.Info(); err == nil {
		s.Platform = info.Platform + " " + info.PlatformVersion
		s.UptimeSeconds = info.Uptime
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.MemTotal = vm.Total
		s.MemUsedPct = vm.UsedPercent
	}
	return s
}
