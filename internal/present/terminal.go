package present

import (
	"fmt"
	"image"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Terminal shows frames in a terminal with half-block characters. It is a
// low-resolution preview for headless machines reached over a console.
type Terminal struct {
	screen tcell.Screen
	w, h   int
	events eventQueue

	mu      sync.Mutex
	cols    int
	rows    int
	buttons tcell.ButtonMask
	scaled  *image.NRGBA
}

// NewTerminal takes over the terminal. Frames are expected to be w×h.
func NewTerminal(w, h int) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("present: terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("present: terminal init: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()

	t := &Terminal{screen: screen, w: w, h: h, events: newEventQueue(256)}
	t.cols, t.rows = screen.Size()
	go t.pump()
	return t, nil
}

// pump forwards tcell events until the screen is finalized.
func (t *Terminal) pump() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			for _, e := range translateKey(ev) {
				t.events.push(e)
			}
		case *tcell.EventMouse:
			col, row := ev.Position()
			t.mu.Lock()
			x, y := cellToPixel(col, row, t.cols, t.rows, t.w, t.h)
			prev := t.buttons
			t.buttons = ev.Buttons()
			t.mu.Unlock()
			for _, e := range mouseTransitions(prev, ev.Buttons(), x, y) {
				t.events.push(e)
			}
		case *tcell.EventResize:
			t.mu.Lock()
			t.cols, t.rows = t.screen.Size()
			t.mu.Unlock()
			t.screen.Sync()
		}
	}
}

func translateKey(ev *tcell.EventKey) []Event {
	var k Key
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return []Event{Quit()}
	case tcell.KeyEscape:
		k = KeyEscape
	case tcell.KeyTab:
		k = KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		k = KeyBackspace
	case tcell.KeyDelete:
		k = KeyDelete
	case tcell.KeyEnter:
		k = KeyEnter
	case tcell.KeyLeft:
		k = KeyLeft
	case tcell.KeyRight:
		k = KeyRight
	case tcell.KeyUp:
		k = KeyUp
	case tcell.KeyDown:
		k = KeyDown
	case tcell.KeyRune:
		return []Event{RuneDown(ev.Rune())}
	default:
		return nil
	}
	// Terminals never report Shift on its own, only as a modifier.
	if ev.Modifiers()&tcell.ModShift != 0 {
		return []Event{KeyPress(KeyShift), KeyPress(k), KeyRelease(KeyShift)}
	}
	return []Event{KeyPress(k)}
}

// mouseTransitions turns a change in held buttons into presenter events.
func mouseTransitions(prev, cur tcell.ButtonMask, x, y int) []Event {
	out := []Event{MouseMove(x, y)}
	for _, m := range []struct {
		mask tcell.ButtonMask
		btn  Button
	}{
		{tcell.Button1, ButtonLeft},
		{tcell.Button2, ButtonRight},
		{tcell.Button3, ButtonMiddle},
	} {
		was, is := prev&m.mask != 0, cur&m.mask != 0
		switch {
		case is && !was:
			out = append(out, MouseDown(x, y, m.btn))
		case was && !is:
			out = append(out, MouseUp(x, y, m.btn))
		}
	}
	return out
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.w, t.h
}

func (t *Terminal) Present(pix []byte, w, h int) error {
	if len(pix) < w*h*4 {
		return fmt.Errorf("present: terminal frame %dx%d: %d bytes", w, h, len(pix))
	}
	t.mu.Lock()
	cols, rows := t.cols, t.rows
	t.w, t.h = w, h
	t.mu.Unlock()

	t.scaled = downsample(pix, w, h, cols, rows, t.scaled)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top, bottom := cellColors(t.scaled, col, row)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top[0]), int32(top[1]), int32(top[2]))).
				Background(tcell.NewRGBColor(int32(bottom[0]), int32(bottom[1]), int32(bottom[2])))
			t.screen.SetContent(col, row, upperHalf, nil, style)
		}
	}
	t.screen.Show()
	return nil
}

func (t *Terminal) Events() []Event { return t.events.drain() }

func (t *Terminal) Close() error {
	t.screen.Fini()
	return nil
}
