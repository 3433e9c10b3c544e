// Package app runs the frame loop: it routes input, steps the selected
// effect, masks scene regions, draws the calibration overlay and hands the
// finished frame to a presenter.
package app

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
	"unicode"

	"wallfacer/internal/calibration"
	"wallfacer/internal/control"
	"wallfacer/internal/effect"
	"wallfacer/internal/present"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
	"wallfacer/internal/snapshot"
	"wallfacer/internal/text"
)

// Mode is what the operator is doing.
type Mode uint8

const (
	ModeEffect Mode = iota
	ModeCalibration
)

func (m Mode) String() string {
	if m == ModeCalibration {
		return "calibration"
	}
	return "effect"
}

const (
	// DefaultScenePath is used by S/L when no scene file was given.
	DefaultScenePath = "scene.json"

	cursorStep     = 5
	cursorStepFast = 20
	frameInterval  = time.Second / 60
)

// Options configures an App.
type Options struct {
	Width, Height int
	Rotation      raster.Rotation
	// Effect is the starting slot; effect.TestPatternIndex selects the test pattern.
	Effect    int
	ScenePath string
	VSync     bool
	ShowFPS   bool
	// Benchmark runs for this many seconds, prints a report and quits.
	Benchmark float64
	// ShotDir receives screenshots taken with P.
	ShotDir  string
	Recorder *snapshot.Recorder
	// Out receives user-facing messages; defaults to stdout.
	Out io.Writer
}

// App owns the scene editor, the effect registry and the frame buffers.
type App struct {
	opts     Options
	registry *effect.Registry
	editor   *calibration.Editor
	fps      *FPSCounter

	buf     *raster.Buffer
	rotated *raster.Buffer

	mode     Mode
	showFPS  bool
	shift    bool
	quit     bool
	elapsed  float64
	cursorX  int
	cursorY  int
	shots    int
	wantShot bool
}

// New builds an App over reg editing scene, which may be nil.
func New(reg *effect.Registry, scene *region.Scene, opts Options) *App {
	if opts.ScenePath == "" {
		opts.ScenePath = DefaultScenePath
	}
	if opts.ShotDir == "" {
		opts.ShotDir = "."
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	window := fpsWindow
	if opts.Benchmark > 0 {
		window = benchmarkWindow
		opts.VSync = false
	}
	if opts.Effect == effect.TestPatternIndex || reg.Len() == 0 {
		reg.SelectTestPattern()
	} else {
		reg.Select(min(max(opts.Effect, 0), reg.Len()-1))
	}
	return &App{
		opts:     opts,
		registry: reg,
		editor:   calibration.New(scene),
		fps:      NewFPSCounter(window),
		buf:      raster.New(opts.Width, opts.Height),
		showFPS:  opts.ShowFPS,
		cursorX:  opts.Width / 2,
		cursorY:  opts.Height / 2,
	}
}

func (a *App) Registry() *effect.Registry { return a.registry }
func (a *App) Editor() *calibration.Editor { return a.editor }
func (a *App) Scene() *region.Scene { return a.editor.Scene() }
func (a *App) FPS() *FPSCounter { return a.fps }
func (a *App) Mode() Mode { return a.mode }
func (a *App) Quit() bool { return a.quit }
func (a *App) ShowingFPS() bool { return a.showFPS }
func (a *App) Cursor() (int, int) { return a.cursorX, a.cursorY }
func (a *App) Buffer() *raster.Buffer { return a.buf }
func (a *App) keyboardCursor() bool { return a.opts.Rotation != raster.Rotate0 }
func (a *App) benchmarking() bool { return a.opts.Benchmark > 0 }
func (a *App) calibrating() bool { return a.mode == ModeCalibration }
func (a *App) printf(format string, v ...any) { fmt.Fprintf(a.opts.Out, format, v...) }

// Step runs one frame: record timing, apply input and commands, update and
// render the effect, mask regions, overlay the editor and return the frame
// as the presenter should show it.
func (a *App) Step(dt float64, events []present.Event, cmds []control.Command) *raster.Buffer {
	if dt > 0 {
		a.fps.Record(dt)
	}
	a.elapsed += dt
	if a.benchmarking() && a.elapsed >= a.opts.Benchmark {
		a.finishBenchmark()
	}

	for _, ev := range events {
		a.handleEvent(ev)
	}
	for _, cmd := range cmds {
		a.Execute(cmd)
	}

	cur := a.registry.Current()
	scene := a.editor.Scene()
	if !a.calibrating() {
		cur.Update(dt, a.opts.Width, a.opts.Height, scene)
	}
	cur.Render(a.buf)
	mask := cur.RegionColor()
	a.buf.MaskRegions(scene, mask)

	if a.calibrating() {
		a.buf.Dim()
		a.editor.Render(a.buf, mask)
		if a.keyboardCursor() {
			drawCursor(a.buf, a.cursorX, a.cursorY)
		}
	}
	if a.showFPS {
		text.DrawTextShadowed(a.buf, 4, a.opts.Height-12, a.fps.Overlay(),
			raster.RGB{R: 255, G: 255, B: 255}, raster.RGB{}, 1, 1, 1)
	}

	out := a.buf
	if a.opts.Rotation != raster.Rotate0 {
		a.rotated = a.buf.Rotated(a.opts.Rotation, a.rotated)
		out = a.rotated
	}
	if a.wantShot {
		a.wantShot = false
		a.screenshot(out)
	}
	return out
}

func (a *App) finishBenchmark() {
	cur := a.registry.Current()
	r := a.fps.Report(a.opts.Width, a.opts.Height, cur.Name(), max(a.registry.Index(), 0), a.elapsed, a.opts.Benchmark)
	r.Write(a.opts.Out)
	a.quit = true
}

func (a *App) screenshot(frame *raster.Buffer) {
	path, err := snapshot.Screenshot(a.opts.ShotDir, a.shots, frame.Bytes(), frame.Width(), frame.Height())
	if err != nil {
		log.Printf("app: screenshot: %v", err)
		return
	}
	a.shots++
	a.printf("Screenshot saved to %s\n", path)
}

func (a *App) handleEvent(ev present.Event) {
	switch ev.Kind {
	case present.EventQuit:
		a.quit = true
	case present.EventKeyDown:
		a.keyDown(ev)
	case present.EventKeyUp:
		if ev.Key == present.KeyShift {
			a.setShift(false)
		}
	case present.EventMouseMove, present.EventMouseDown, present.EventMouseUp:
		if a.calibrating() && !a.benchmarking() {
			a.mouse(ev)
		}
	}
}

func (a *App) setShift(held bool) {
	a.shift = held
	a.editor.SetShift(held)
}

func (a *App) keyDown(ev present.Event) {
	if ev.Key == present.KeyEscape {
		a.quit = true
		return
	}
	if a.benchmarking() {
		return
	}

	switch ev.Key {
	case present.KeyTab:
		a.Execute(control.Command{Kind: control.ToggleCalibration})
	case present.KeyShift:
		a.setShift(true)
	case present.KeyBackspace:
		a.registry.SelectTestPattern()
	case present.KeyDelete:
		if a.calibrating() {
			a.editor.DeleteSelected()
		}
	case present.KeyLeft, present.KeyRight, present.KeyUp, present.KeyDown:
		if a.calibrating() && a.keyboardCursor() {
			a.moveCursor(ev.Key)
			return
		}
		if ev.Key == present.KeyLeft {
			a.registry.Prev()
		} else if ev.Key == present.KeyRight {
			a.registry.Next()
		}
	case present.KeyEnter:
		if a.calibrating() && a.keyboardCursor() {
			a.editor.MouseDown(a.cursorX, a.cursorY, calibration.ButtonLeft)
			a.editor.MouseUp(a.cursorX, a.cursorY, calibration.ButtonLeft)
		}
	case present.KeyRune:
		a.runeKey(ev.Rune)
	}
}

func (a *App) runeKey(r rune) {
	if slot, ok := effect.SlotForKey(r); ok {
		a.registry.Select(slot)
		return
	}
	switch unicode.ToLower(r) {
	case 'f':
		a.Execute(control.Command{Kind: control.ToggleFPS})
	case 's':
		a.Execute(control.Command{Kind: control.Save})
	case 'l':
		a.Execute(control.Command{Kind: control.Load})
	case 'p':
		a.wantShot = true
	}
}

func (a *App) moveCursor(k present.Key) {
	step := cursorStep
	if a.shift {
		step = cursorStepFast
	}
	switch k {
	case present.KeyLeft:
		a.cursorX = max(a.cursorX-step, 0)
	case present.KeyRight:
		a.cursorX = min(a.cursorX+step, a.opts.Width-1)
	case present.KeyUp:
		a.cursorY = max(a.cursorY-step, 0)
	case present.KeyDown:
		a.cursorY = min(a.cursorY+step, a.opts.Height-1)
	}
	a.editor.MouseMove(a.cursorX, a.cursorY)
}

// mouse maps a presenter event from physical to logical coordinates and
// forwards it to the editor.
func (a *App) mouse(ev present.Event) {
	x, y := a.opts.Rotation.UnrotatePoint(ev.X, ev.Y, a.opts.Width, a.opts.Height)
	btn := calibration.ButtonLeft
	switch ev.Button {
	case present.ButtonRight:
		btn = calibration.ButtonRight
	case present.ButtonMiddle:
		btn = calibration.ButtonMiddle
	}
	switch ev.Kind {
	case present.EventMouseMove:
		a.editor.MouseMove(x, y)
	case present.EventMouseDown:
		a.editor.MouseDown(x, y, btn)
	case present.EventMouseUp:
		a.editor.MouseUp(x, y, btn)
	}
}

// Execute applies one command from the keyboard or the control socket.
func (a *App) Execute(cmd control.Command) {
	switch cmd.Kind {
	case control.Prev:
		a.registry.Prev()
	case control.Next:
		a.registry.Next()
	case control.ToggleCalibration:
		if a.calibrating() {
			a.mode = ModeEffect
		} else {
			a.mode = ModeCalibration
		}
	case control.ToggleFPS:
		a.showFPS = !a.showFPS
	case control.Save:
		a.saveScene()
	case control.Load:
		a.loadScene()
	case control.Quit:
		a.quit = true
	case control.SelectEffect:
		a.registry.Select(cmd.Effect)
	}
}

func (a *App) saveScene() {
	if err := a.editor.Scene().Save(a.opts.ScenePath); err != nil {
		log.Printf("app: save scene: %v", err)
		return
	}
	a.printf("Scene saved to %s\n", a.opts.ScenePath)
}

func (a *App) loadScene() {
	scene, err := region.Load(a.opts.ScenePath)
	if err != nil {
		log.Printf("app: load scene: %v", err)
		return
	}
	a.editor.SetScene(scene)
	a.printf("Scene loaded from %s\n", a.opts.ScenePath)
}

// Run drives frames into p until quit. Commands from q, which may be nil,
// are applied once per frame. With VSync the loop sleeps to hold 60 frames
// per second.
func (a *App) Run(p present.Presenter, q *control.Queue) error {
	var cmds []control.Command
	last := time.Now()
	for !a.quit {
		start := time.Now()
		dt := start.Sub(last).Seconds()
		last = start

		cmds = cmds[:0]
		if q != nil {
			cmds = q.Drain(cmds)
		}
		frame := a.Step(dt, p.Events(), cmds)
		if a.quit {
			break
		}
		if err := p.Present(frame.Bytes(), frame.Width(), frame.Height()); err != nil {
			return err
		}
		if a.opts.Recorder != nil {
			a.opts.Recorder.Add(frame.Bytes(), frame.Width(), frame.Height())
		}
		if a.opts.VSync {
			if rest := frameInterval - time.Since(start); rest > 0 {
				time.Sleep(rest)
			}
		}
	}
	return nil
}
