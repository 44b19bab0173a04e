package health

import (
	"context"
	"fmt"
	"time"

	"jobcard-backend/internal/cache"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

type HealthChecker struct {
	db      *pgxpool.Pool
	storage string
	started time.Time
}

type HealthStatus struct {
	Status   string          `json:"status"`
	Storage  string          `json:"storage"`
	Database DependencyCheck `json:"database"`
	Redis    DependencyCheck `json:"redis"`
}

type DependencyCheck struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
}

type DetailedStatus struct {
	HealthStatus
	Uptime string      `json:"uptime"`
	System SystemStats `json:"system"`
	DBPool *PoolStats  `json:"db_pool,omitempty"`
}

type SystemStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsed    string  `json:"memory_used"`
	MemoryTotal   string  `json:"memory_total"`
	DiskPercent   float64 `json:"disk_percent"`
	DiskUsed      string  `json:"disk_used"`
	DiskTotal     string  `json:"disk_total"`
}

type PoolStats struct {
	TotalConns    int32 `json:"total_conns"`
	IdleConns     int32 `json:"idle_conns"`
	AcquiredConns int32 `json:"acquired_conns"`
	MaxConns      int32 `json:"max_conns"`
}

// NewHealthChecker builds a checker. db is nil with the memory storage driver.
func NewHealthChecker(db *pgxpool.Pool, storage string) *HealthChecker {
	return &HealthChecker{db: db, storage: storage, started: time.Now()}
}

// CheckBasic reports unhealthy when the database is unreachable. A missing
// Redis is reported but never fails the check.
func (h *HealthChecker) CheckBasic(ctx context.Context) HealthStatus {
	dbHealth := h.checkDatabase(ctx)

	status := "healthy"
	if dbHealth.Status == "unhealthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:   status,
		Storage:  h.storage,
		Database: dbHealth,
		Redis:    checkRedis(ctx),
	}
}

// CheckDetailed adds host resource usage and pool statistics
func (h *HealthChecker) CheckDetailed(ctx context.Context) DetailedStatus {
	d := DetailedStatus{
		HealthStatus: h.CheckBasic(ctx),
		Uptime:       time.Since(h.started).Round(time.Second).String(),
		System:       systemStats(),
	}
	if h.db != nil {
		s := h.db.Stat()
		d.DBPool = &PoolStats{
			TotalConns:    s.TotalConns(),
			IdleConns:     s.IdleConns(),
			AcquiredConns: s.AcquiredConns(),
			MaxConns:      s.MaxConns(),
		}
	}
	return d
}

func (h *HealthChecker) checkDatabase(ctx context.Context) DependencyCheck {
	if h.db == nil {
		return DependencyCheck{Status: "not_configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DependencyCheck{Status: "unhealthy", ResponseTime: responseTime, Error: err.Error()}
	}
	return DependencyCheck{Status: "healthy", ResponseTime: responseTime}
}

func checkRedis(ctx context.Context) DependencyCheck {
	client := cache.GetClient()
	if client == nil {
		return DependencyCheck{Status: "not_configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := client.Ping(ctx).Err()
	responseTime := time.Since(start).Milliseconds()
	if err != nil {
		return DependencyCheck{Status: "unhealthy", ResponseTime: responseTime, Error: err.Error()}
	}
	return DependencyCheck{Status: "healthy", ResponseTime: responseTime}
}

func systemStats() SystemStats {
	var s SystemStats

	if cpuPercents, err := cpu.Percent(200*time.Millisecond, false); err == nil && len(cpuPercents) > 0 {
		s.CPUPercent = cpuPercents[0]
	}
	if memStats, err := mem.VirtualMemory(); err == nil {
		s.MemoryPercent = memStats.UsedPercent
		s.MemoryUsed = formatBytes(memStats.Used)
		s.MemoryTotal = formatBytes(memStats.Total)
	}
	if diskStats, err := disk.Usage("/"); err == nil {
		s.DiskPercent = diskStats.UsedPercent
		s.DiskUsed = formatBytes(diskStats.Used)
		s.DiskTotal = formatBytes(diskStats.Total)
	}
	return s
}

func formatBytes(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	if gb < 1 {
		mb := float64(bytes) / (1024 * 1024)
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", gb)
}
