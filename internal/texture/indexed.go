package texture

// IndexedTexture stores one palette index (or luminance) byte per texel.
type IndexedTexture struct {
	W, H int
	Idx  []uint8
}

func NewIndexed(w, h int) *IndexedTexture {
	w, h = max(w, 1), max(h, 1)
	return &IndexedTexture{W: w, H: h, Idx: make([]uint8, w*h)}
}

// FromGrayscale takes the red channel of t as the index.
func FromGrayscale(t *Texture) *IndexedTexture {
	it := &IndexedTexture{W: t.W, H: t.H, Idx: make([]uint8, t.W*t.H)}
	for i := range it.Idx {
		it.Idx[i] = t.Pix[i*4]
	}
	return it
}

func (t *IndexedTexture) SetIndex(x, y int, v uint8) {
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return
	}
	t.Idx[y*t.W+x] = v
}

// SampleIndex wraps by bitmask; dimensions must be powers of two.
func (t *IndexedTexture) SampleIndex(tx, ty int) uint8 {
	x := uint(tx) & uint(t.W-1)
	y := uint(ty) & uint(t.H-1)
	return t.Idx[int(y)*t.W+int(x)]
}

// IndexedMipTexture is the mip chain of an IndexedTexture.
type IndexedMipTexture struct {
	levels []*IndexedTexture
}

func NewIndexedMip(src *IndexedTexture) *IndexedMipTexture {
	m := &IndexedMipTexture{levels: []*IndexedTexture{src}}
	w, h := src.W, src.H
	for w > 1 && h > 1 {
		prev := m.levels[len(m.levels)-1]
		nw, nh := w/2, h/2
		down := NewIndexed(nw, nh)
		for dy := 0; dy < nh; dy++ {
			for dx := 0; dx < nw; dx++ {
				sy, sx := dy*2, dx*2
				sum := uint32(prev.Idx[sy*w+sx]) + uint32(prev.Idx[sy*w+sx+1]) +
					uint32(prev.Idx[(sy+1)*w+sx]) + uint32(prev.Idx[(sy+1)*w+sx+1])
				down.Idx[dy*nw+dx] = uint8(sum / 4)
			}
		}
		m.levels = append(m.levels, down)
		w, h = nw, nh
	}
	return m
}

// IndexedMipFromGrayscale is NewIndexedMip(FromGrayscale(t)).
func IndexedMipFromGrayscale(t *Texture) *IndexedMipTexture {
	return NewIndexedMip(FromGrayscale(t))
}

func (m *IndexedMipTexture) LevelCount() int { return len(m.levels) }

func (m *IndexedMipTexture) Level(l int) *IndexedTexture {
	return m.levels[clampLevel(l, len(m.levels))]
}

// SampleIndexMipped samples level l with level-0 coordinates shifted down by l.
func (m *IndexedMipTexture) SampleIndexMipped(tx, ty, level int) uint8 {
	l := clampLevel(level, len(m.levels))
	return m.levels[l].SampleIndex(tx>>l, ty>>l)
}
