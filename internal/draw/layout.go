package draw

import (
	"math"
	"strings"
)

// Rect is an area of terminal cells. Col and Row are 1-based.
type Rect struct {
	Col, Row      int
	Width, Height int
}

// Empty reports whether the rectangle has no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the cell (col, row) lies inside r.
func (r Rect) Contains(col, row int) bool {
	return col >= r.Col && col < r.Col+r.Width && row >= r.Row && row < r.Row+r.Height
}

// CenterCol returns the middle column of r.
func (r Rect) CenterCol() int {
	return r.Col + r.Width/2
}

// CenterRow returns the middle row of r.
func (r Rect) CenterRow() int {
	return r.Row + r.Height/2
}

// Inset shrinks r by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{Col: r.Col + n, Row: r.Row + n, Width: max(0, r.Width-2*n), Height: max(0, r.Height-2*n)}
}

// ClampTermSize clamps terminal dimensions to a max render resolution and
// computes the 0-based offset that centers the render area.
func ClampTermSize(termWidth, termHeight, maxWidth, maxHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, maxWidth)
	renderHeight = min(termHeight, maxHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// PercentToCell maps a position given in percent of r to the nearest cell in r.
func PercentToCell(r Rect, xPct, yPct int) (col, row int) {
	col = r.Col + int(math.Round(float64(xPct)/100*float64(r.Width-1)))
	row = r.Row + int(math.Round(float64(yPct)/100*float64(r.Height-1)))
	return
}

// Border draws a single-line box on the edge cells of r.
func Border(cw *ChunkWriter, r Rect) {
	if r.Width < 2 || r.Height < 2 {
		return
	}
	inner := strings.Repeat("─", r.Width-2)
	cw.WriteAt(r.Col, r.Row, "┌"+inner+"┐")
	for row := r.Row + 1; row < r.Row+r.Height-1; row++ {
		cw.WriteAt(r.Col, row, "│")
		cw.WriteAt(r.Col+r.Width-1, row, "│")
	}
	cw.WriteAt(r.Col, r.Row+r.Height-1, "└"+inner+"┘")
}

// Fill overwrites every cell of r with spaces.
func Fill(cw *ChunkWriter, r Rect) {
	if r.Empty() {
		return
	}
	blank := strings.Repeat(" ", r.Width)
	for row := r.Row; row < r.Row+r.Height; row++ {
		cw.WriteAt(r.Col, row, blank)
	}
}
