package tui

// brailleDots maps a micro-pixel inside a 2x4 cell to its braille dot bit.
var brailleDots = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell dot mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= brailleDots[mx%2][my%4]
}

// line draws a Bresenham segment on the microgrid. Segments far outside
// the buffer are skipped rather than walked.
func (b *brailleBuf) line(x0, y0, x1, y1 int) {
	wMic, hMic := b.w*2, b.h*4
	if (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) || (x0 >= wMic && x1 >= wMic) || (y0 >= hMic && y1 >= hMic) {
		return
	}
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// polyline connects consecutive micro points.
func (b *brailleBuf) polyline(pts [][2]int) {
	for i := 1; i < len(pts); i++ {
		b.line(pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1])
	}
	if len(pts) == 1 {
		b.setPixel(pts[0][0], pts[0][1])
	}
}

// cell returns the glyph at a cell, or a space when no dot is set.
func (b *brailleBuf) cell(x, y int) rune {
	mask := b.m[y][x]
	if mask == 0 {
		return ' '
	}
	return rune(0x2800 + int(mask))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
