package server

import (
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

// SystemInfo describes the host the renders run on
type SystemInfo struct {
	CPUModel          string  `json:"cpuModel,omitempty"`
	LogicalCPUs       int     `json:"logicalCpus"`
	PhysicalCPUs      int     `json:"physicalCpus"`
	MemoryTotal       uint64  `json:"memoryTotal"`
	MemoryAvailable   uint64  `json:"memoryAvailable"`
	MemoryUsedPercent float64 `json:"memoryUsedPercent"`
	Goroutines        int     `json:"goroutines"`
	DefaultWorkers    int     `json:"defaultWorkers"`
}

// collectSystemInfo gathers what the host reports; missing data is left zero
func collectSystemInfo() SystemInfo {
	info := SystemInfo{
		Goroutines:     runtime.NumGoroutine(),
		DefaultWorkers: renderer.DefaultWorkerCount(),
	}

	if cpuInfo, err := cpu.Info(); err == nil && len(cpuInfo) > 0 {
		info.CPUModel = cpuInfo[0].ModelName
	}
	if n, err := cpu.Counts(true); err == nil {
		info.LogicalCPUs = n
	}
	if n, err := cpu.Counts(false); err == nil {
		info.PhysicalCPUs = n
	}
	if memInfo, err := mem.VirtualMemory(); err == nil {
		info.MemoryTotal = memInfo.Total
		info.MemoryAvailable = memInfo.Available
		info.MemoryUsedPercent = memInfo.UsedPercent
	}

	return info
}

// handleSystem reports host resources
func (s *Server) handleSystem(c echo.Context) error {
	return c.JSON(http.StatusOK, collectSystemInfo())
}
