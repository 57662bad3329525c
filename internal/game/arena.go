package game

import "math"

// Arena describes the play field and sprite size in the same units
// (pixels, terminal cells, ...). Only the ratios matter.
type Arena struct {
	Width, Height             float64
	SpriteWidth, SpriteHeight float64
}

// DefaultArena matches an 800x600 field with a 64x64 sprite.
var DefaultArena = Arena{Width: 800, Height: 600, SpriteWidth: 64, SpriteHeight: 64}

// Padding returns the half-sprite margin per axis as a percentage in [0, 50].
func (a Arena) Padding() (padX, padY float64) {
	return axisPadding(a.SpriteWidth, a.Width), axisPadding(a.SpriteHeight, a.Height)
}

// Bounds returns the integer percentage range a target centre may occupy per axis.
func (a Arena) Bounds() (minX, maxX, minY, maxY int) {
	padX, padY := a.Padding()
	minX, maxX = axisBounds(padX)
	minY, maxY = axisBounds(padY)
	return
}

func axisPadding(sprite, size float64) float64 {
	if size <= 0 {
		return 50
	}
	pad := sprite / size * 50
	return math.Max(0, math.Min(50, pad))
}

func axisBounds(pad float64) (int, int) {
	return int(math.Ceil(pad)), int(math.Floor(100 - pad))
}
