package entity

import (
	"math"

	"mercury-maze/game/types"
)

// Blob is the mercury ball: a point mass with a collision radius.
type Blob struct {
	Pos    types.Vec2
	Vel    types.Vec2
	Radius float64
}

func NewBlob(start types.Vec2, radius float64) *Blob {
	return &Blob{
		Pos:    start,
		Radius: radius,
	}
}

// Speed returns the velocity magnitude in pixels per tick.
func (b *Blob) Speed() float64 {
	return math.Hypot(b.Vel.X, b.Vel.Y)
}

// Clamp keeps the blob fully on a surface of the given size.
func (b *Blob) Clamp(surface types.Size) {
	b.Pos.X = clamp(b.Pos.X, b.Radius, float64(surface.Width)-b.Radius)
	b.Pos.Y = clamp(b.Pos.Y, b.Radius, float64(surface.Height)-b.Radius)
}

// Inside reports whether the blob already satisfies the clamp bounds.
func (b *Blob) Inside(surface types.Size) bool {
	return b.Pos.X >= b.Radius && b.Pos.X <= float64(surface.Width)-b.Radius &&
		b.Pos.Y >= b.Radius && b.Pos.Y <= float64(surface.Height)-b.Radius
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
