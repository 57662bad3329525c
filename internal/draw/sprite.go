package draw

// Sprite is fixed-width ASCII art, one string per row.
type Sprite []string

// Width returns the widest row.
func (s Sprite) Width() int {
	w := 0
	for _, line := range s {
		w = max(w, len(line))
	}
	return w
}

// Height returns the number of rows.
func (s Sprite) Height() int {
	return len(s)
}

// RectAt returns the cells the sprite covers when centered on (col, row),
// shifted to stay inside bounds where possible.
func (s Sprite) RectAt(col, row int, bounds Rect) Rect {
	r := Rect{Col: col - s.Width()/2, Row: row - s.Height()/2, Width: s.Width(), Height: s.Height()}
	r.Col = clampStart(r.Col, r.Width, bounds.Col, bounds.Width)
	r.Row = clampStart(r.Row, r.Height, bounds.Row, bounds.Height)
	return r
}

// Draw writes the sprite with its top-left corner at r in the given colour.
func (s Sprite) Draw(cw *ChunkWriter, r Rect, color string) {
	for i, line := range s {
		cw.WriteColored(r.Col, r.Row+i, color, line)
	}
}

func clampStart(start, size, lo, span int) int {
	if size >= span {
		return lo
	}
	if start < lo {
		return lo
	}
	if start+size > lo+span {
		return lo + span - size
	}
	return start
}
