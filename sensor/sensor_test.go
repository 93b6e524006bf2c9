package sensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"mercury-maze/game/types"
)

type heldKeys Keys

func (h heldKeys) HeldKeys() Keys { return Keys(h) }

func TestKeyboardMapsToMountingFrame(t *testing.T) {
	tests := []struct {
		name         string
		keys         Keys
		tiltX, tiltY float64
	}{
		{"level", Keys{}, 0, 0},
		{"right pushes +tiltY", Keys{Right: true}, 0, 100},
		{"left pushes -tiltY", Keys{Left: true}, 0, -100},
		{"down pushes -tiltX", Keys{Down: true}, -100, 0},
		{"up pushes +tiltX", Keys{Up: true}, 100, 0},
		{"opposites cancel", Keys{Left: true, Right: true}, 0, 0},
		{"diagonal", Keys{Down: true, Right: true}, -100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := NewKeyboard(heldKeys(tt.keys), 100).ReadTilt()
			assert.Equal(t, tt.tiltX, x)
			assert.Equal(t, tt.tiltY, y)
		})
	}
}

func TestKeyboardDefaultMagnitude(t *testing.T) {
	_, y := NewKeyboard(heldKeys{Right: true}, 0).ReadTilt()
	assert.Equal(t, OneG/2, y)
}

func TestScript(t *testing.T) {
	samples := []types.Vec2{{X: 1, Y: 2}, {X: math.NaN(), Y: 0}, {X: 3, Y: 4}}

	t.Run("levels after the end", func(t *testing.T) {
		s := NewScript(samples, false)
		got := [][2]float64{}
		for i := 0; i < 5; i++ {
			x, y := s.ReadTilt()
			got = append(got, [2]float64{x, y})
		}
		assert.Equal(t, [][2]float64{{1, 2}, {0, 0}, {3, 4}, {0, 0}, {0, 0}}, got)
	})

	t.Run("loops", func(t *testing.T) {
		s := NewScript(samples, true)
		for i := 0; i < 3; i++ {
			s.ReadTilt()
		}
		x, y := s.ReadTilt()
		assert.Equal(t, 1.0, x)
		assert.Equal(t, 2.0, y)
	})

	t.Run("empty", func(t *testing.T) {
		x, y := NewScript(nil, true).ReadTilt()
		assert.Zero(t, x)
		assert.Zero(t, y)
	})
}

func TestSweep(t *testing.T) {
	samples := Sweep(4, 1000)
	assert.Len(t, samples, 4)

	// First sample tilts toward screen right: tiltY positive, tiltX level.
	assert.InDelta(t, 0, samples[0].X, 1e-9)
	assert.InDelta(t, 1000, samples[0].Y, 1e-9)
	// A quarter turn later it tilts toward screen bottom: tiltX negative.
	assert.InDelta(t, -1000, samples[1].X, 1e-9)
	assert.InDelta(t, 0, samples[1].Y, 1e-9)
}

func TestFinite(t *testing.T) {
	assert.True(t, Finite(1, -1))
	assert.False(t, Finite(math.NaN(), 0))
	assert.False(t, Finite(0, math.Inf(-1)))
}
