package present

import (
	"image"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestEventQueueDropsNewest(t *testing.T) {
	q := newEventQueue(2)
	q.push(RuneDown('a'))
	q.push(RuneDown('b'))
	q.push(RuneDown('c'))
	got := q.drain()
	if len(got) != 2 || got[0].Rune != 'a' || got[1].Rune != 'b' {
		t.Errorf("drain = %+v", got)
	}
	if len(q.drain()) != 0 {
		t.Error("queue not empty")
	}
}

func TestHeadless(t *testing.T) {
	p := NewHeadless(2, 1)
	pix := []byte{255, 1, 2, 3, 255, 4, 5, 6}
	if err := p.Present(pix, 2, 1); err != nil {
		t.Fatalf("Present: %v", err)
	}
	pix[1] = 99
	if last := p.Last(); last[1] != 1 || p.Frames() != 1 {
		t.Errorf("last %v frames %d", last, p.Frames())
	}
	if err := p.Present(pix[:4], 2, 1); err == nil {
		t.Error("short frame accepted")
	}

	p.Inject(Quit(), KeyPress(KeyTab))
	evs := p.Events()
	if len(evs) != 2 || evs[0].Kind != EventQuit || evs[1].Key != KeyTab {
		t.Errorf("events = %+v", evs)
	}
}

func TestMirror(t *testing.T) {
	h := NewHeadless(1, 1)
	v, err := NewSSHView("127.0.0.1:0", "")
	if err != nil {
		t.Fatal(err)
	}
	_, ch := v.attach()
	p := Mirror(h, v)
	if err := p.Present([]byte{255, 0, 0, 9}, 1, 1); err != nil {
		t.Fatal(err)
	}
	if h.Frames() != 1 {
		t.Error("frame not presented")
	}
	select {
	case f := <-ch:
		if f.w != 1 || f.pix[3] != 9 {
			t.Errorf("broadcast frame %+v", f)
		}
	default:
		t.Fatal("viewer got no frame")
	}

	// A viewer that has not drained keeps its pending frame.
	v.Broadcast([]byte{255, 0, 0, 1}, 1, 1)
	v.Broadcast([]byte{255, 0, 0, 2}, 1, 1)
	if f := <-ch; f.pix[3] != 1 {
		t.Errorf("pending frame = %v, want the first", f.pix)
	}
	if v.Viewers() != 1 {
		t.Errorf("viewers = %d", v.Viewers())
	}
}

func TestDownsample(t *testing.T) {
	// 2×2 frame: top row red, bottom row blue.
	pix := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		255, 255, 0, 0, 255, 255, 0, 0,
	}
	img := downsample(pix, 2, 2, 2, 1, nil)
	if img.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	top, bottom := cellColors(img, 1, 0)
	if top != [3]uint8{255, 0, 0} || bottom != [3]uint8{0, 0, 255} {
		t.Errorf("cell = %v / %v", top, bottom)
	}
	if again := downsample(pix, 2, 2, 2, 1, img); again != img {
		t.Error("destination not reused")
	}
}

func TestWriteANSI(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	copy(img.Pix, []byte{
		10, 20, 30, 255, 10, 20, 30, 255,
		40, 50, 60, 255, 40, 50, 60, 255,
	})
	var sb strings.Builder
	writeANSI(&sb, img)
	out := sb.String()
	if strings.Count(out, "\x1b[38;2;10;20;30;48;2;40;50;60m") != 1 {
		t.Errorf("repeated cells should share one SGR: %q", out)
	}
	if strings.Count(out, string(upperHalf)) != 2 {
		t.Errorf("cells = %q", out)
	}
}

func TestCellToPixel(t *testing.T) {
	tests := []struct {
		col, row, cols, rows, w, h int
		x, y                       int
	}{
		{0, 0, 80, 24, 640, 480, 4, 10},
		{79, 23, 80, 24, 640, 480, 636, 470},
		{100, 100, 80, 24, 640, 480, 639, 479},
		{0, 0, 0, 0, 640, 480, 0, 0},
	}
	for _, tt := range tests {
		x, y := cellToPixel(tt.col, tt.row, tt.cols, tt.rows, tt.w, tt.h)
		if x != tt.x || y != tt.y {
			t.Errorf("cellToPixel(%d,%d) = %d,%d, want %d,%d", tt.col, tt.row, x, y, tt.x, tt.y)
		}
	}
}

func TestMouseTransitions(t *testing.T) {
	tests := []struct {
		name      string
		prev, cur tcell.ButtonMask
		want      []EventKind
	}{
		{"move", tcell.ButtonNone, tcell.ButtonNone, []EventKind{EventMouseMove}},
		{"press", tcell.ButtonNone, tcell.Button1, []EventKind{EventMouseMove, EventMouseDown}},
		{"drag", tcell.Button1, tcell.Button1, []EventKind{EventMouseMove}},
		{"release", tcell.Button1, tcell.ButtonNone, []EventKind{EventMouseMove, EventMouseUp}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mouseTransitions(tt.prev, tt.cur, 3, 4)
			if len(got) != len(tt.want) {
				t.Fatalf("got %+v", got)
			}
			for i, e := range got {
				if e.Kind != tt.want[i] || e.X != 3 || e.Y != 4 {
					t.Errorf("event %d = %+v", i, e)
				}
			}
		})
	}
	right := mouseTransitions(tcell.ButtonNone, tcell.Button2, 0, 0)
	if right[1].Button != ButtonRight {
		t.Errorf("Button2 maps to %v", right[1].Button)
	}
}
