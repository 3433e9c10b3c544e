package present

import (
	"fmt"
	"image"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
)

// Window is a native window driven by shiny.
type Window struct {
	win    screen.Window
	events eventQueue

	mu   sync.Mutex
	buf  screen.Buffer
	scr  screen.Screen
	w, h int
}

// stopEvent ends the window's event loop once the frame loop has returned.
type stopEvent struct{}

// RunWindow opens a w×h window and calls run with it on a new goroutine while
// the calling goroutine services window events. Most platforms require this
// to be called from main. It returns run's error once run finishes or the
// window is closed and run has returned.
func RunWindow(title string, w, h int, run func(Presenter) error) error {
	var runErr error
	var openErr error
	driver.Main(func(s screen.Screen) {
		win, err := s.NewWindow(&screen.NewWindowOptions{Title: title, Width: w, Height: h})
		if err != nil {
			openErr = fmt.Errorf("present: new window: %w", err)
			return
		}
		defer win.Release()
		buf, err := s.NewBuffer(image.Point{X: w, Y: h})
		if err != nil {
			openErr = fmt.Errorf("present: new buffer: %w", err)
			return
		}

		p := &Window{win: win, events: newEventQueue(256), buf: buf, scr: s, w: w, h: h}
		defer p.release()

		done := make(chan struct{})
		go func() {
			defer close(done)
			runErr = run(p)
			win.Send(stopEvent{})
		}()
		p.loop()
		<-done
	})
	if openErr != nil {
		return openErr
	}
	return runErr
}

// loop translates shiny events until stopEvent arrives.
func (p *Window) loop() {
	for {
		switch e := p.win.NextEvent().(type) {
		case stopEvent:
			return
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				p.events.push(Quit())
			}
		case key.Event:
			if ev, ok := translateShinyKey(e); ok {
				p.events.push(ev)
			}
		case mouse.Event:
			p.events.push(translateShinyMouse(e))
		case paint.Event:
			p.publish()
		case error:
			log.Printf("present: window: %v", e)
		}
	}
}

func translateShinyKey(e key.Event) (Event, bool) {
	var k Key
	switch e.Code {
	case key.CodeEscape:
		k = KeyEscape
	case key.CodeTab:
		k = KeyTab
	case key.CodeDeleteBackspace:
		k = KeyBackspace
	case key.CodeDeleteForward:
		k = KeyDelete
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		k = KeyEnter
	case key.CodeLeftArrow:
		k = KeyLeft
	case key.CodeRightArrow:
		k = KeyRight
	case key.CodeUpArrow:
		k = KeyUp
	case key.CodeDownArrow:
		k = KeyDown
	case key.CodeLeftShift, key.CodeRightShift:
		k = KeyShift
	default:
		if e.Rune <= 0 || e.Direction != key.DirPress {
			return Event{}, false
		}
		return RuneDown(e.Rune), true
	}
	switch e.Direction {
	case key.DirPress:
		return KeyPress(k), true
	case key.DirRelease:
		return KeyRelease(k), true
	}
	return Event{}, false
}

func translateShinyMouse(e mouse.Event) Event {
	x, y := int(e.X), int(e.Y)
	var b Button
	switch e.Button {
	case mouse.ButtonRight:
		b = ButtonRight
	case mouse.ButtonMiddle:
		b = ButtonMiddle
	default:
		b = ButtonLeft
	}
	switch {
	case e.Direction == mouse.DirPress && e.Button != mouse.ButtonNone:
		return MouseDown(x, y, b)
	case e.Direction == mouse.DirRelease && e.Button != mouse.ButtonNone:
		return MouseUp(x, y, b)
	}
	return MouseMove(x, y)
}

func (p *Window) Size() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.w, p.h
}

// Present converts the frame into the upload buffer and publishes it.
func (p *Window) Present(pix []byte, w, h int) error {
	if len(pix) < w*h*4 {
		return fmt.Errorf("present: window frame %dx%d: %d bytes", w, h, len(pix))
	}
	p.mu.Lock()
	if p.buf == nil || p.buf.Size() != (image.Point{X: w, Y: h}) {
		if p.buf != nil {
			p.buf.Release()
		}
		buf, err := p.scr.NewBuffer(image.Point{X: w, Y: h})
		if err != nil {
			p.mu.Unlock()
			return fmt.Errorf("present: resize buffer: %w", err)
		}
		p.buf, p.w, p.h = buf, w, h
	}
	rgba := p.buf.RGBA()
	for y := 0; y < h; y++ {
		src := pix[y*w*4 : (y+1)*w*4]
		dst := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		for i := 0; i < len(src); i += 4 {
			dst[i] = src[i+3]
			dst[i+1] = src[i+2]
			dst[i+2] = src[i+1]
			dst[i+3] = 255
		}
	}
	p.mu.Unlock()
	p.publish()
	return nil
}

func (p *Window) publish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.buf == nil {
		return
	}
	p.win.Upload(image.Point{}, p.buf, p.buf.Bounds())
	p.win.Publish()
}

func (p *Window) Events() []Event { return p.events.drain() }

// Close does nothing; the window is torn down when RunWindow returns.
func (p *Window) Close() error { return nil }

func (p *Window) release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.buf != nil {
		p.buf.Release()
		p.buf = nil
	}
}
