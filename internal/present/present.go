// Package present puts finished frames on a screen and turns platform input
// into Events. Frames arrive in the raster byte order, [A, B, G, R] per
// pixel, and each backend converts them to what its surface expects.
package present

// Presenter is a display surface plus its input queue.
type Presenter interface {
	// Size is the physical surface size in pixels.
	Size() (w, h int)
	// Present shows a w×h frame of 4-byte ABGR pixels.
	Present(pix []byte, w, h int) error
	// Events returns and clears the input gathered since the last call. It
	// never blocks.
	Events() []Event
	Close() error
}

// EventKind says which fields of an Event are meaningful.
type EventKind uint8

const (
	EventQuit EventKind = iota
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Key is a non-printing key, or KeyRune when Event.Rune carries the character.
type Key uint8

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyTab
	KeyBackspace
	KeyDelete
	KeyEnter
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyShift
)

type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Event is one input occurrence.
type Event struct {
	Kind   EventKind
	Key    Key
	Rune   rune
	X, Y   int
	Button Button
}

func KeyPress(k Key) Event { return Event{Kind: EventKeyDown, Key: k} }
func KeyRelease(k Key) Event { return Event{Kind: EventKeyUp, Key: k} }
func RuneDown(r rune) Event { return Event{Kind: EventKeyDown, Key: KeyRune, Rune: r} }
func MouseMove(x, y int) Event { return Event{Kind: EventMouseMove, X: x, Y: y} }
func Quit() Event { return Event{Kind: EventQuit} }

func MouseDown(x, y int, b Button) Event {
	return Event{Kind: EventMouseDown, X: x, Y: y, Button: b}
}
func MouseUp(x, y int, b Button) Event {
	return Event{Kind: EventMouseUp, X: x, Y: y, Button: b}
}

// eventQueue is a bounded, mutex-free event buffer fed by one pump goroutine
// and drained by the frame loop. When full the newest event is dropped.
type eventQueue chan Event

func newEventQueue(n int) eventQueue { return make(eventQueue, n) }

func (q eventQueue) push(e Event) {
	select {
	case q <- e:
	default:
	}
}

func (q eventQueue) drain() []Event {
	var out []Event
	for {
		select {
		case e := <-q:
			out = append(out, e)
		default:
			return out
		}
	}
}
