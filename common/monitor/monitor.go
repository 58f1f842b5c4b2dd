package monitor

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"paili/common/log"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// LoadInfo 一次采样的负载信息
type LoadInfo struct {
	CPUUsage   float64   `json:"cpu_usage"`
	MemUsage   float64   `json:"mem_usage"`
	HeapAlloc  uint64    `json:"heap_alloc"`
	Goroutines int       `json:"goroutines"`
	SampledAt  time.Time `json:"sampled_at"`
}

// Monitor 定期采样系统负载，最近一次结果供健康检查读取
type Monitor struct {
	updateInterval time.Duration
	latest         atomic.Pointer[LoadInfo]
	stopCh         chan struct{}
	stopOnce       sync.Once
}

// NewMonitor updateInterval 建议 5-10 秒
func NewMonitor(updateInterval time.Duration) *Monitor {
	return &Monitor{
		updateInterval: updateInterval,
		stopCh:         make(chan struct{}),
	}
}

// Start 阻塞运行，直到 ctx 结束或 Stop
func (m *Monitor) Start(ctx context.Context) {
	ticker := time.NewTicker(m.updateInterval)
	defer ticker.Stop()

	// 立即执行一次
	m.sample(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info("Monitor 收到停止信号，退出监控")
			return
		case <-m.stopCh:
			log.Info("Monitor 收到停止信号，退出监控")
			return
		case <-ticker.C:
			m.sample(ctx)
		}
	}
}

// Stop 可重复调用
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// Latest 尚未采样时返回 nil
func (m *Monitor) Latest() *LoadInfo {
	return m.latest.Load()
}

func (m *Monitor) sample(ctx context.Context) {
	info := Collect(ctx)
	m.latest.Store(info)
	log.Debug("Monitor 采样: CPU=%.2f%%, Mem=%.2f%%, Goroutines=%d", info.CPUUsage, info.MemUsage, info.Goroutines)
}

// Collect 采样一次；gopsutil 失败的项记为 0
func Collect(ctx context.Context) *LoadInfo {
	info := &LoadInfo{
		Goroutines: runtime.NumGoroutine(),
		SampledAt:  time.Now(),
	}

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err != nil {
		log.Warn("Monitor 获取 CPU 使用率失败: %v", err)
	} else if len(percents) > 0 {
		info.CPUUsage = percents[0]
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		log.Warn("Monitor 获取内存使用率失败: %v", err)
	} else {
		info.MemUsage = vm.UsedPercent
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	info.HeapAlloc = ms.HeapAlloc
	return info
}
