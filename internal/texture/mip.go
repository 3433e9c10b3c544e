package texture

// MipTexture is a chain of box-filtered levels; level 0 is the source and
// each following level halves both dimensions.
type MipTexture struct {
	levels []*Texture
}

// NewMip builds the chain until either dimension reaches 1.
func NewMip(src *Texture) *MipTexture {
	m := &MipTexture{levels: []*Texture{src}}
	w, h := src.W, src.H
	for w > 1 && h > 1 {
		prev := m.levels[len(m.levels)-1]
		nw, nh := w/2, h/2
		down := New(nw, nh)
		for dy := 0; dy < nh; dy++ {
			for dx := 0; dx < nw; dx++ {
				var sum [4]uint32
				for oy := 0; oy < 2; oy++ {
					for ox := 0; ox < 2; ox++ {
						i := ((dy*2+oy)*w + dx*2 + ox) * 4
						sum[0] += uint32(prev.Pix[i])
						sum[1] += uint32(prev.Pix[i+1])
						sum[2] += uint32(prev.Pix[i+2])
						sum[3] += uint32(prev.Pix[i+3])
					}
				}
				down.SetPixel(dx, dy, uint8(sum[0]/4), uint8(sum[1]/4), uint8(sum[2]/4), uint8(sum[3]/4))
			}
		}
		m.levels = append(m.levels, down)
		w, h = nw, nh
	}
	return m
}

func (m *MipTexture) LevelCount() int { return len(m.levels) }

// Level returns level l, clamped to the chain.
func (m *MipTexture) Level(l int) *Texture {
	return m.levels[clampLevel(l, len(m.levels))]
}

// SampleMipped samples level l with level-0 texel coordinates shifted down by l.
func (m *MipTexture) SampleMipped(tx, ty, level int) (r, g, b uint8) {
	l := clampLevel(level, len(m.levels))
	return m.levels[l].SampleTexel(tx>>l, ty>>l)
}

func clampLevel(l, n int) int {
	if l < 0 {
		return 0
	}
	if l >= n {
		return n - 1
	}
	return l
}
