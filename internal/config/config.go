package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"wallfacer/internal/control"
)

// Backends accepted by Config.Backend.
const (
	BackendWindow   = "window"
	BackendTerminal = "terminal"
	BackendHeadless = "headless"
)

const (
	DefaultWidth     = 640
	DefaultHeight    = 480
	DefaultScene     = "scene.json"
	DefaultSocket    = control.DefaultSocket
	DefaultBenchmark = 10.0
)

// Config holds the renderer settings.
type Config struct {
	// Display
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	NoVSync bool   `json:"no_vsync"`
	Rotate  int    `json:"rotate"`
	Backend string `json:"backend"`
	Effect  int    `json:"effect"`

	// Paths
	Scene      string `json:"scene"`
	TextureDir string `json:"texture_dir"`
	ShotDir    string `json:"screenshot_dir"`
	Socket     string `json:"socket"`

	// Recording
	RecordDir    string `json:"record_dir"`
	RecordEvery  int    `json:"record_every"`
	RecordWidth  int    `json:"record_max_width"`
	RecordHeight int    `json:"record_max_height"`
	Workers      int    `json:"workers"`

	// Remote preview
	SSHAddr    string `json:"ssh_addr"`
	SSHHostKey string `json:"ssh_host_key"`

	// Benchmark is a run length in seconds; 0 runs interactively.
	Benchmark float64 `json:"benchmark"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings. Pointer
// fields are nil when the flag was not given.
type Flags struct {
	Width      int
	Height     int
	Resolution string
	NoVSync    bool
	Effect     *int
	Rotate     *int
	Scene      string
	Benchmark  float64
	Backend    string
	TextureDir string
	RecordDir  string
	ShotDir    string
	Socket     string
	SSHAddr    string
	Workers    int
}

// Resolve applies CLI overrides, then fills empty fields with defaults.
// It fails on a malformed resolution or an unsupported rotation or backend.
func (c *Config) Resolve(flags Flags) error {
	// CLI flags override config file
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Resolution != "" {
		w, h, err := ParseResolution(flags.Resolution)
		if err != nil {
			return err
		}
		c.Width, c.Height = w, h
	}
	if flags.NoVSync {
		c.NoVSync = true
	}
	if flags.Effect != nil {
		c.Effect = *flags.Effect
	}
	if flags.Rotate != nil {
		c.Rotate = *flags.Rotate
	}
	overrideString(&c.Scene, flags.Scene)
	overrideString(&c.Backend, flags.Backend)
	overrideString(&c.TextureDir, flags.TextureDir)
	overrideString(&c.RecordDir, flags.RecordDir)
	overrideString(&c.ShotDir, flags.ShotDir)
	overrideString(&c.Socket, flags.Socket)
	overrideString(&c.SSHAddr, flags.SSHAddr)
	if flags.Benchmark > 0 {
		c.Benchmark = flags.Benchmark
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Defaults
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Backend == "" {
		c.Backend = BackendWindow
	}
	if c.Scene == "" {
		c.Scene = DefaultScene
	}
	if c.ShotDir == "" {
		c.ShotDir = "."
	}
	if c.Socket == "" {
		c.Socket = DefaultSocket
	}
	if c.RecordEvery <= 0 {
		c.RecordEvery = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Benchmark > 0 {
		c.NoVSync = true
	}
	return c.validate()
}

func (c *Config) validate() error {
	switch c.Rotate {
	case 0, 90, 180, 270:
	default:
		return fmt.Errorf("config: rotate %d: must be 0, 90, 180 or 270", c.Rotate)
	}
	switch c.Backend {
	case BackendWindow, BackendTerminal, BackendHeadless:
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if c.Effect < -1 {
		return fmt.Errorf("config: effect %d out of range", c.Effect)
	}
	return nil
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// ParseResolution parses "WxH", for example "1920x1080".
func ParseResolution(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if ok {
		w, err = strconv.Atoi(ws)
		if err == nil {
			h, err = strconv.Atoi(hs)
		}
	}
	if !ok || err != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("config: resolution %q: want WxH", s)
	}
	return w, h, nil
}
