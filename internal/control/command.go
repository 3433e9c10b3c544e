// Package control is the remote control socket: newline-separated commands
// arrive on a Unix socket and are queued for the frame loop as if the
// matching key had been pressed.
package control

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies a command.
type Kind uint8

const (
	Prev Kind = iota
	Next
	ToggleCalibration
	ToggleFPS
	Save
	Load
	Quit
	SelectEffect
)

func (k Kind) String() string {
	switch k {
	case Prev:
		return "prev"
	case Next:
		return "next"
	case ToggleCalibration:
		return "calibrate"
	case ToggleFPS:
		return "fps"
	case Save:
		return "save"
	case Load:
		return "load"
	case Quit:
		return "quit"
	case SelectEffect:
		return "effect"
	}
	return "unknown"
}

// Command is one parsed request. Effect is set for SelectEffect only.
type Command struct {
	Kind   Kind
	Effect int
}

func (c Command) String() string {
	if c.Kind == SelectEffect {
		return "effect " + strconv.Itoa(c.Effect)
	}
	return c.Kind.String()
}

var words = map[string]Kind{
	"left":      Prev,
	"prev":      Prev,
	"right":     Next,
	"next":      Next,
	"tab":       ToggleCalibration,
	"calibrate": ToggleCalibration,
	"f":         ToggleFPS,
	"fps":       ToggleFPS,
	"s":         Save,
	"save":      Save,
	"l":         Load,
	"load":      Load,
	"q":         Quit,
	"quit":      Quit,
	"exit":      Quit,
}

// Parse reads one command line. Matching ignores case and surrounding space;
// "effect N" and a bare number both select effect N.
func Parse(line string) (Command, error) {
	s := strings.ToLower(strings.TrimSpace(line))
	if k, ok := words[s]; ok {
		return Command{Kind: k}, nil
	}
	num := s
	if rest, ok := strings.CutPrefix(s, "effect "); ok {
		num = strings.TrimSpace(rest)
	}
	n, err := strconv.Atoi(num)
	if err != nil || n < 0 {
		return Command{}, fmt.Errorf("control: unknown command %q", strings.TrimSpace(line))
	}
	return Command{Kind: SelectEffect, Effect: n}, nil
}
