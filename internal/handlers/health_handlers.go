package handlers

import (
	"net/http"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"sales-crm/internal/utils"
)

type systemHealth struct {
	Hostname      string  `json:"hostname"`
	UptimeSeconds uint64  `json:"uptimeSeconds"`
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryUsed    uint64  `json:"memoryUsed"`
	MemoryTotal   uint64  `json:"memoryTotal"`
	DiskUsed      uint64  `json:"diskUsed"`
	DiskTotal     uint64  `json:"diskTotal"`
	Sessions      int     `json:"sessions"`
}

func (c *CRMHandlers) Hello(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, "OK")
}

func (c *CRMHandlers) DBPing(w http.ResponseWriter, r *http.Request) {
	if err := c.Store.Ping(r.Context()); err != nil {
		c.Log.Warn("database ping failed: %v", err)
		utils.RespondError(w, http.StatusServiceUnavailable, "Database unreachable")
		return
	}
	utils.RespondJSON(w, http.StatusOK, "OK")
}

// SystemHealth reports host resource usage. Readings that fail leave their fields zero.
func (c *CRMHandlers) SystemHealth(w http.ResponseWriter, r *http.Request) {
	var h systemHealth
	if info, err := host.InfoWithContext(r.Context()); err == nil {
		h.Hostname = info.Hostname
		h.UptimeSeconds = info.Uptime
	}
	if pct, err := cpu.PercentWithContext(r.Context(), 200*time.Millisecond, false); err == nil && len(pct) > 0 {
		h.CPUPercent = pct[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(r.Context()); err == nil {
		h.MemoryUsed, h.MemoryTotal = vm.Used, vm.Total
	}
	if du, err := disk.UsageWithContext(r.Context(), "/"); err == nil {
		h.DiskUsed, h.DiskTotal = du.Used, du.Total
	}
	if c.Sessions != nil {
		h.Sessions = c.Sessions.Len()
	}
	utils.RespondJSON(w, http.StatusOK, h)
}
