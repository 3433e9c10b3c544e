package snapshot

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// RecorderConfig controls a frame recording.
type RecorderConfig struct {
	Dir     string
	Workers int
	// Every keeps one frame in Every; 0 or 1 keeps all.
	Every int
	// MaxWidth and MaxHeight downscale frames that exceed them; 0 disables.
	MaxWidth  int
	MaxHeight int
}

// FrameResult is the outcome of encoding one frame.
type FrameResult struct {
	Index int    `json:"index"`
	Image string `json:"image,omitempty"`
	Error string `json:"error,omitempty"`
}

type frameJob struct {
	index int
	pix   []byte
	w, h  int
}

// Recorder encodes frames on a worker pool. Add never blocks the frame loop:
// when every worker is busy and the queue is full the frame is dropped.
type Recorder struct {
	cfg  RecorderConfig
	jobs chan frameJob
	wg   sync.WaitGroup
	done chan struct{}

	mu      sync.Mutex
	results []FrameResult

	seen     int
	encoded  atomic.Int64
	dropped  atomic.Int64
	start    time.Time
	closeErr error
	closed   bool
}

// NewRecorder starts the worker pool and a progress reporter.
func NewRecorder(cfg RecorderConfig) (*Recorder, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("snapshot: mkdir %s: %w", cfg.Dir, err)
	}
	cfg.Workers = max(cfg.Workers, 1)
	cfg.Every = max(cfg.Every, 1)

	r := &Recorder{
		cfg:   cfg,
		jobs:  make(chan frameJob, cfg.Workers*2),
		done:  make(chan struct{}),
		start: time.Now(),
	}
	for w := 0; w < cfg.Workers; w++ {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			for job := range r.jobs {
				r.record(r.encode(job))
			}
		}()
	}
	go r.progress()
	return r, nil
}

func (r *Recorder) progress() {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			if n := r.encoded.Load(); n > 0 {
				rate := float64(n) / time.Since(r.start).Seconds()
				log.Printf("snapshot: %d frames encoded, %.1f frames/sec, %d dropped", n, rate, r.dropped.Load())
			}
		}
	}
}

// Add copies a w×h ABGR frame and queues it for encoding. It reports false
// when the frame was skipped or dropped.
func (r *Recorder) Add(pix []byte, w, h int) bool {
	if r.closed {
		return false
	}
	idx := r.seen
	r.seen++
	if idx%r.cfg.Every != 0 {
		return false
	}
	job := frameJob{index: idx / r.cfg.Every, pix: append([]byte(nil), pix[:w*h*4]...), w: w, h: h}
	select {
	case r.jobs <- job:
		return true
	default:
		r.dropped.Add(1)
		return false
	}
}

func (r *Recorder) encode(job frameJob) FrameResult {
	name := fmt.Sprintf("frame-%06d.webp", job.index)
	img := Downscale(ToNRGBA(job.pix, job.w, job.h), r.cfg.MaxWidth, r.cfg.MaxHeight)
	if err := WriteWebP(filepath.Join(r.cfg.Dir, name), img); err != nil {
		return FrameResult{Index: job.index, Error: err.Error()}
	}
	return FrameResult{Index: job.index, Image: name}
}

func (r *Recorder) record(res FrameResult) {
	r.mu.Lock()
	r.results = append(r.results, res)
	r.mu.Unlock()
	r.encoded.Add(1)
}

// Dropped counts frames lost to a full queue.
func (r *Recorder) Dropped() int { return int(r.dropped.Load()) }

// Close waits for queued frames, writes manifest.json and returns the
// per-frame results in frame order.
func (r *Recorder) Close() ([]FrameResult, error) {
	if r.closed {
		return r.sorted(), r.closeErr
	}
	r.closed = true
	close(r.jobs)
	r.wg.Wait()
	close(r.done)

	results := r.sorted()
	r.closeErr = WriteManifest(filepath.Join(r.cfg.Dir, "manifest.json"), Manifest{
		Frames:  results,
		Dropped: r.Dropped(),
		Seconds: time.Since(r.start).Seconds(),
	})
	return results, r.closeErr
}

func (r *Recorder) sorted() []FrameResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]FrameResult(nil), r.results...)
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Manifest describes a finished recording.
type Manifest struct {
	Frames  []FrameResult `json:"frames"`
	Dropped int           `json:"dropped"`
	Seconds float64       `json:"seconds"`
}

// WriteManifest writes m as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", path, err)
	}
	return nil
}
