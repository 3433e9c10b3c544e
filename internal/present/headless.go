package present

import (
	"fmt"
	"sync"
)

// Headless presents into memory. It backs benchmarks, recording without a
// display, and tests that script input with Inject.
type Headless struct {
	mu     sync.Mutex
	w, h   int
	last   []byte
	frames int
	events eventQueue
}

func NewHeadless(w, h int) *Headless {
	return &Headless{w: w, h: h, events: newEventQueue(256)}
}

func (p *Headless) Size() (int, int) { return p.w, p.h }

func (p *Headless) Present(pix []byte, w, h int) error {
	if len(pix) < w*h*4 {
		return fmt.Errorf("present: headless frame %dx%d: %d bytes", w, h, len(pix))
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = append(p.last[:0], pix[:w*h*4]...)
	p.w, p.h = w, h
	p.frames++
	return nil
}

// Inject queues events for the next Events call.
func (p *Headless) Inject(evs ...Event) {
	for _, e := range evs {
		p.events.push(e)
	}
}

func (p *Headless) Events() []Event { return p.events.drain() }

// Frames is the number of frames presented so far.
func (p *Headless) Frames() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frames
}

// Last returns a copy of the most recent frame.
func (p *Headless) Last() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.last...)
}

func (p *Headless) Close() error { return nil }
