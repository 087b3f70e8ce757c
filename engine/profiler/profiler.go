package profiler

import (
	"log/slog"
	"runtime"
	"time"
)

// Profiler aggregates per-frame statistics for the solar system frame loop and
// emits a structured summary at a fixed interval: frame rate, how many bodies
// survived frustum culling versus the scene total, heap usage, allocation
// rate, and GC pause behaviour.
type Profiler struct {
	frameCount     int
	visibleSum     int
	bodyCount      int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	logger         *slog.Logger
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithUpdateInterval sets how often the profiler emits a summary line.
// Defaults to 1 second.
//
// Parameters:
//   - interval: duration between summaries
//
// Returns:
//   - ProfilerOption: option function to apply
func WithUpdateInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		p.updateInterval = interval
	}
}

// WithLogger sets the structured logger the profiler reports through.
// Defaults to slog.Default().
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - ProfilerOption: option function to apply
func WithLogger(logger *slog.Logger) ProfilerOption {
	return func(p *Profiler) {
		p.logger = logger
	}
}

// NewProfiler creates a new Profiler with the given options applied.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		logger:         slog.Default(),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Tick records one rendered frame and its culling outcome. When the update
// interval has elapsed it logs the aggregated statistics and resets the
// accumulators.
//
// Parameters:
//   - visibleBodies: bodies drawn this frame after frustum culling
//   - totalBodies: total bodies in the scene
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(visibleBodies, totalBodies int) bool {
	p.frameCount++
	p.visibleSum += visibleBodies
	p.bodyCount = totalBodies

	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	visibleAvg := float64(p.visibleSum) / float64(p.frameCount)

	runtime.ReadMemStats(&p.memStats)
	// Alloc is live heap; TotalAlloc is cumulative and tracks churn; Sys is
	// the actual process footprint obtained from the OS.
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses; report the most
	// recent pause and the worst pause since the previous summary.
	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	p.logger.Info("frame stats",
		slog.Float64("fps", fps),
		slog.Float64("visible_avg", visibleAvg),
		slog.Int("bodies", p.bodyCount),
		slog.Float64("heap_mb", allocMB),
		slog.Float64("alloc_mb_per_s", allocRateMB),
		slog.Uint64("gc_count", uint64(gcCount)),
		slog.Uint64("gc_last_us", lastPauseUs),
		slog.Uint64("gc_max_us", maxPauseUs),
		slog.Float64("sys_mb", sysMB),
	)

	p.frameCount = 0
	p.visibleSum = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
