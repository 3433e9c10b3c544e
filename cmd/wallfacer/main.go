package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"wallfacer/internal/app"
	"wallfacer/internal/config"
	"wallfacer/internal/control"
	"wallfacer/internal/effect"
	"wallfacer/internal/present"
	"wallfacer/internal/raster"
	"wallfacer/internal/region"
	"wallfacer/internal/snapshot"
	"wallfacer/internal/texture"
)

// benchmarkFlag is a flag with an optional value: "-b" alone means the
// default duration, "-b=20" or a trailing "-b 20" sets it.
type benchmarkFlag struct {
	set  bool
	secs float64
}

func (b *benchmarkFlag) String() string   { return strconv.FormatFloat(b.secs, 'g', -1, 64) }
func (b *benchmarkFlag) IsBoolFlag() bool { return true }

func (b *benchmarkFlag) Set(s string) error {
	b.set = true
	if s == "true" {
		b.secs = config.DefaultBenchmark
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("invalid duration %q", s)
	}
	b.secs = v
	return nil
}

// optionalInt records whether an int flag was given at all.
type optionalInt struct{ v *int }

func (o *optionalInt) String() string {
	if o.v == nil {
		return ""
	}
	return strconv.Itoa(*o.v)
}

func (o *optionalInt) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	o.v = &v
	return nil
}

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	// CLI flags, long and short forms share a variable
	var flags config.Flags
	var effectFlag, rotateFlag optionalInt
	var bench benchmarkFlag
	configFile := flag.String("config", "", "Path to config.json file")
	flag.IntVar(&flags.Width, "width", 0, "Window width (default: 640)")
	flag.IntVar(&flags.Width, "w", 0, "Shorthand for -width")
	flag.IntVar(&flags.Height, "height", 0, "Window height (default: 480)")
	flag.IntVar(&flags.Height, "h", 0, "Shorthand for -height")
	flag.StringVar(&flags.Resolution, "resolution", "", "Resolution as WxH, e.g. 1920x1080")
	flag.StringVar(&flags.Resolution, "r", "", "Shorthand for -resolution")
	flag.BoolVar(&flags.NoVSync, "no-vsync", false, "Disable the 60 fps frame cap")
	flag.Var(&effectFlag, "effect", "Start with effect N (0-indexed, -1 for the test pattern)")
	flag.Var(&effectFlag, "e", "Shorthand for -effect")
	flag.StringVar(&flags.Scene, "scene", "", "Scene file for regions (default: scene.json)")
	flag.StringVar(&flags.Scene, "s", "", "Shorthand for -scene")
	flag.Var(&rotateFlag, "rotate", "Rotate the display by 0, 90, 180 or 270 degrees")
	flag.Var(&bench, "benchmark", "Run a benchmark for S seconds (default: 10)")
	flag.Var(&bench, "b", "Shorthand for -benchmark")
	flag.StringVar(&flags.Backend, "backend", "", "Display backend: window, terminal or headless")
	flag.StringVar(&flags.TextureDir, "textures", "", "Directory of texture overrides")
	flag.StringVar(&flags.RecordDir, "record", "", "Record frames as WebP into DIR")
	flag.StringVar(&flags.ShotDir, "screenshots", "", "Directory for P screenshots (default: .)")
	flag.StringVar(&flags.Socket, "socket", "", "Control socket path (default: /tmp/wallfacer.sock)")
	flag.StringVar(&flags.SSHAddr, "ssh", "", "Serve an SSH preview on ADDR, e.g. :2222")
	flag.IntVar(&flags.Workers, "workers", 0, "Recorder worker goroutines (default: NumCPU)")
	flag.Parse()

	flags.Effect = effectFlag.v
	flags.Rotate = rotateFlag.v
	if bench.set {
		flags.Benchmark = bench.secs
		if flag.NArg() > 0 {
			if v, err := strconv.ParseFloat(flag.Arg(0), 64); err == nil && v > 0 {
				flags.Benchmark = v
			}
		}
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	if err := cfg.Resolve(flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Backend == config.BackendTerminal {
		// tcell owns the screen; keep log output off it.
		f, err := os.OpenFile("wallfacer.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	rot, ok := raster.ParseRotation(cfg.Rotate)
	if !ok {
		log.Fatalf("invalid rotation %d: use 0, 90, 180 or 270", cfg.Rotate)
	}

	// Build texture index
	var res texture.Resolver
	if cfg.TextureDir != "" {
		idx := texture.BuildIndex(cfg.TextureDir)
		res = texture.NewCache(idx)
		fmt.Printf("Textures: %d indexed\n", idx.Len())
	}
	reg := effect.NewRegistry(res)

	scene, err := region.Load(cfg.Scene)
	if err != nil {
		log.Printf("no scene loaded, starting empty: %v", err)
		scene = region.NewScene(region.DefaultSceneName)
	}

	opts := app.Options{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Rotation:  rot,
		Effect:    cfg.Effect,
		ScenePath: cfg.Scene,
		VSync:     !cfg.NoVSync,
		Benchmark: cfg.Benchmark,
		ShotDir:   cfg.ShotDir,
	}

	if cfg.RecordDir != "" {
		rec, err := snapshot.NewRecorder(snapshot.RecorderConfig{
			Dir:       cfg.RecordDir,
			Workers:   cfg.Workers,
			Every:     cfg.RecordEvery,
			MaxWidth:  cfg.RecordWidth,
			MaxHeight: cfg.RecordHeight,
		})
		if err != nil {
			return err
		}
		opts.Recorder = rec
		defer func() {
			results, err := rec.Close()
			if err != nil {
				log.Printf("recorder: %v", err)
			}
			fmt.Printf("Recorded %d frames to %s (%d dropped)\n", len(results), cfg.RecordDir, rec.Dropped())
		}()
	}

	a := app.New(reg, scene, opts)
	printBanner(cfg, a, scene)

	// Remote control socket
	var queue *control.Queue
	if cfg.Benchmark == 0 {
		queue = control.NewQueue(64)
		srv, err := control.Listen(cfg.Socket, queue)
		if err != nil {
			log.Printf("control socket unavailable: %v", err)
		} else {
			go srv.Serve()
			defer srv.Close()
			fmt.Printf("Control socket: %s\n", srv.Path())
		}
	}

	var view *present.SSHView
	if cfg.SSHAddr != "" {
		view, err = present.NewSSHView(cfg.SSHAddr, cfg.SSHHostKey)
		if err != nil {
			return err
		}
		go func() {
			if err := view.Serve(); err != nil {
				log.Printf("ssh preview: %v", err)
			}
		}()
		defer view.Close()
	}

	loop := func(p present.Presenter) error {
		if view != nil {
			p = present.Mirror(p, view)
		}
		return a.Run(p, queue)
	}

	// The window and terminal show the rotated frame.
	pw, ph := cfg.Width, cfg.Height
	if rot.Swaps() {
		pw, ph = ph, pw
	}
	switch cfg.Backend {
	case config.BackendTerminal:
		p, err := present.NewTerminal(pw, ph)
		if err != nil {
			return err
		}
		defer p.Close()
		return loop(p)
	case config.BackendHeadless:
		p := present.NewHeadless(pw, ph)
		defer p.Close()
		return loop(p)
	default:
		return present.RunWindow("wallfacer", pw, ph, loop)
	}
}

func printBanner(cfg config.Config, a *app.App, scene *region.Scene) {
	reg := a.Registry()
	name := reg.Current().Name()
	if cfg.Benchmark > 0 {
		fmt.Println("=== wallfacer benchmark ===")
		fmt.Printf("Resolution: %dx%d\n", cfg.Width, cfg.Height)
		fmt.Printf("Scene: %s (%d regions)\n", cfg.Scene, len(scene.Regions))
		fmt.Printf("Effect: %s (index %d)\n", name, max(reg.Index(), 0))
		fmt.Printf("Duration: %g seconds\n", cfg.Benchmark)
		fmt.Println("Running...")
		return
	}

	fmt.Println("=== wallfacer ===")
	fmt.Printf("Resolution: %dx%d\n", cfg.Width, cfg.Height)
	if cfg.Rotate != 0 {
		fmt.Printf("Rotation: %d degrees\n", cfg.Rotate)
	}
	if cfg.NoVSync {
		fmt.Println("VSync: OFF (uncapped framerate)")
	} else {
		fmt.Println("VSync: ON (60fps locked). Use --no-vsync for uncapped.")
	}
	fmt.Println()
	fmt.Println("Available effects (use --effect N or arrow keys):")
	for i, n := range reg.Names() {
		fmt.Printf("  %2d - %s\n", i, n)
	}
	fmt.Println()
	fmt.Println("Controls:")
	fmt.Println("  Left/Right - Cycle through effects")
	fmt.Println("  1-0 - = [ ] - Select effect slot")
	fmt.Println("  Backspace  - Test pattern")
	fmt.Println("  Tab        - Toggle calibration mode")
	fmt.Println("  F          - Toggle FPS display")
	fmt.Println("  S / L      - Save / load scene")
	fmt.Println("  P          - Screenshot")
	fmt.Println("  Escape     - Quit")
	fmt.Println()
	fmt.Println("Calibration mode:")
	fmt.Println("  Left click        - Select region / start drawing polygon")
	fmt.Println("  Shift + drag      - Draw circle (drag to set radius)")
	fmt.Println("  Click + drag      - Move vertices / resize circle")
	fmt.Println("  Close polygon     - Click near first vertex")
	fmt.Println("  Right click       - Cancel / deselect")
	fmt.Println("  Delete            - Delete selected region")
	if cfg.Rotate != 0 {
		fmt.Println("  Arrows / Enter    - Move cursor / click (Shift for larger steps)")
	}
}
