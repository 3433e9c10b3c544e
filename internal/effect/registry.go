package effect

import (
	"strings"

	"wallfacer/internal/texture"
)

// TestPatternIndex is the selection index of the test pattern sentinel.
const TestPatternIndex = -1

// slotKeys maps keyboard keys to the first registry slots, in order.
const slotKeys = "1234567890-=[]"

// Registry holds the effects in keyboard-slot order plus the test pattern,
// which sits outside the list and is reached by Backspace or by wrapping
// past either end.
type Registry struct {
	effects []Effect
	test    Effect
	current int
}

// NewRegistry builds every effect. Texture overrides for the rotozoomer and
// raycaster are looked up in res, which may be nil.
func NewRegistry(res texture.Resolver) *Registry {
	return NewRegistryOf(NewTestPattern(),
		NewPlasma(),
		NewStarfield(),
		NewFire(),
		NewScrollerDemo(),
		NewTextFxDemo(),
		NewMandelbrot(),
		NewDvd(),
		NewCopperBars(),
		NewGlenz(),
		NewRotozoomer(res),
		NewTunnel(),
		NewBobs(),
		NewLivingWall(),
		NewRipples(),
		NewSnowfall(),
		NewJulia(),
		NewRaycaster(res),
		NewRegionFire(),
		NewLightning(),
		NewVines(),
		NewMetaballs(),
		NewVortex(),
		NewRubber(),
		NewDotTunnel(),
		NewVectorBalls(),
		NewPipes(),
		NewWorms(),
		NewGravityBalls(),
		NewLavaRegions(),
		NewEtherealInk(),
	)
}

// NewRegistryOf builds a registry from an explicit list, starting on the
// first effect (or the test pattern when the list is empty).
func NewRegistryOf(test Effect, effects ...Effect) *Registry {
	r := &Registry{effects: effects, test: test}
	if len(effects) == 0 {
		r.current = TestPatternIndex
	}
	return r
}

func (r *Registry) Len() int { return len(r.effects) }

// Index returns the current selection; TestPatternIndex for the sentinel.
func (r *Registry) Index() int { return r.current }

// Current returns the selected effect.
func (r *Registry) Current() Effect {
	if r.current == TestPatternIndex {
		return r.test
	}
	return r.effects[r.current]
}

// At returns effect i, or nil when i is out of range.
func (r *Registry) At(i int) Effect {
	if i < 0 || i >= len(r.effects) {
		return nil
	}
	return r.effects[i]
}

// Select switches to effect i. Out of range indexes are ignored.
func (r *Registry) Select(i int) bool {
	if i < 0 || i >= len(r.effects) {
		return false
	}
	r.current = i
	return true
}

func (r *Registry) SelectTestPattern() { r.current = TestPatternIndex }

// Next steps right: the last effect wraps to the test pattern, and the
// test pattern to the first effect.
func (r *Registry) Next() {
	switch {
	case r.current == TestPatternIndex && len(r.effects) > 0:
		r.current = 0
	case r.current+1 >= len(r.effects):
		r.current = TestPatternIndex
	default:
		r.current++
	}
}

// Prev steps left, mirroring Next.
func (r *Registry) Prev() {
	switch {
	case r.current == TestPatternIndex:
		r.current = len(r.effects) - 1
	case r.current == 0:
		r.current = TestPatternIndex
	default:
		r.current--
	}
}

// Names lists effect names in slot order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.effects))
	for i, e := range r.effects {
		out[i] = e.Name()
	}
	return out
}

// SlotForKey returns the registry slot bound to a number-row key.
func SlotForKey(key rune) (int, bool) {
	i := strings.IndexRune(slotKeys, key)
	return i, i >= 0
}
