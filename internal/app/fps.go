package app

import (
	"fmt"
	"io"
	"math"
	"sort"
)

const (
	fpsWindow       = 60
	benchmarkWindow = 100_000
)

// FPSCounter keeps a rolling window of frame times.
type FPSCounter struct {
	samples []float64
	window  int
	next    int
	frames  int
}

func NewFPSCounter(window int) *FPSCounter {
	window = max(window, 1)
	return &FPSCounter{samples: make([]float64, 0, min(window, 1024)), window: window}
}

// Record adds one frame time in seconds.
func (c *FPSCounter) Record(dt float64) {
	c.frames++
	if len(c.samples) < c.window {
		c.samples = append(c.samples, dt)
		return
	}
	c.samples[c.next] = dt
	c.next = (c.next + 1) % c.window
}

// Frames is the number of frames recorded since construction.
func (c *FPSCounter) Frames() int { return c.frames }

func (c *FPSCounter) meanDt() float64 {
	if len(c.samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, dt := range c.samples {
		sum += dt
	}
	return sum / float64(len(c.samples))
}

// Average is the frame rate over the window.
func (c *FPSCounter) Average() float64 {
	if dt := c.meanDt(); dt > 0 {
		return 1 / dt
	}
	return 0
}

// MinMax returns the slowest and fastest frame rates in the window.
func (c *FPSCounter) MinMax() (lo, hi float64) {
	if len(c.samples) == 0 {
		return 0, 0
	}
	minDt, maxDt := math.Inf(1), 0.0
	for _, dt := range c.samples {
		minDt = min(minDt, dt)
		maxDt = max(maxDt, dt)
	}
	if maxDt > 0 {
		lo = 1 / maxDt
	}
	if minDt > 0 {
		hi = 1 / minDt
	}
	return lo, hi
}

// FrameTimeMS is the mean frame time in milliseconds.
func (c *FPSCounter) FrameTimeMS() float64 { return c.meanDt() * 1000 }

// StdDevMS is the population standard deviation of frame times in milliseconds.
func (c *FPSCounter) StdDevMS() float64 {
	n := len(c.samples)
	if n == 0 {
		return 0
	}
	mean := c.meanDt()
	sum := 0.0
	for _, dt := range c.samples {
		d := dt - mean
		sum += d * d
	}
	return math.Sqrt(sum/float64(n)) * 1000
}

// PercentilesMS returns the 1st, 50th and 99th percentile frame times in
// milliseconds, using the nearest rank.
func (c *FPSCounter) PercentilesMS() (p1, p50, p99 float64) {
	n := len(c.samples)
	if n == 0 {
		return 0, 0, 0
	}
	sorted := append([]float64(nil), c.samples...)
	sort.Float64s(sorted)
	at := func(p float64) float64 {
		return sorted[int(math.Round(p*float64(n-1)))] * 1000
	}
	return at(0.01), at(0.50), at(0.99)
}

// Overlay is the one-line text shown by the FPS toggle.
func (c *FPSCounter) Overlay() string {
	lo, hi := c.MinMax()
	return fmt.Sprintf("FPS %d avg  %d min  %d max  %dms",
		int(c.Average()), int(lo), int(hi), int(c.FrameTimeMS()))
}

// BenchmarkReport summarises a timed run.
type BenchmarkReport struct {
	Width, Height int
	Effect        string
	EffectIndex   int
	Elapsed       float64
	Requested     float64

	Frames      int
	AverageFPS  float64
	MinFPS      float64
	MaxFPS      float64
	FrameTimeMS float64
	StdDevMS    float64
	P1, P50     float64
	P99         float64
}

// Report builds a BenchmarkReport from the counter's window.
func (c *FPSCounter) Report(w, h int, effect string, index int, elapsed, requested float64) BenchmarkReport {
	r := BenchmarkReport{
		Width:       w,
		Height:      h,
		Effect:      effect,
		EffectIndex: index,
		Elapsed:     elapsed,
		Requested:   requested,
		Frames:      c.frames,
		FrameTimeMS: c.FrameTimeMS(),
		StdDevMS:    c.StdDevMS(),
	}
	r.MinFPS, r.MaxFPS = c.MinMax()
	r.P1, r.P50, r.P99 = c.PercentilesMS()
	if r.FrameTimeMS > 0 {
		r.AverageFPS = 1000 / r.FrameTimeMS
	}
	return r
}

func (r BenchmarkReport) Write(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Benchmark Results ===")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintf(w, "  Resolution:     %dx%d\n", r.Width, r.Height)
	fmt.Fprintf(w, "  Effect:         %s (index %d)\n", r.Effect, r.EffectIndex)
	fmt.Fprintf(w, "  Duration:       %.2fs (requested %gs)\n", r.Elapsed, r.Requested)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Frame Statistics:")
	fmt.Fprintf(w, "  Total frames:   %d\n", r.Frames)
	fmt.Fprintf(w, "  Average FPS:    %.1f\n", r.AverageFPS)
	fmt.Fprintf(w, "  Min FPS:        %.1f\n", r.MinFPS)
	fmt.Fprintf(w, "  Max FPS:        %.1f\n", r.MaxFPS)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Frame Time (ms):")
	fmt.Fprintf(w, "  Average:        %.2f\n", r.FrameTimeMS)
	fmt.Fprintf(w, "  Std deviation:  %.2f\n", r.StdDevMS)
	fmt.Fprintf(w, "  1st percentile: %.2f (fastest 1%%)\n", r.P1)
	fmt.Fprintf(w, "  Median (p50):   %.2f\n", r.P50)
	fmt.Fprintf(w, "  99th percentile:%.2f (slowest 1%%)\n", r.P99)
}
