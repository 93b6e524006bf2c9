package sensor

import (
	"math"

	"mercury-maze/game/types"
)

// Script replays a fixed sequence of tilt samples, X = tiltX and Y = tiltY.
// When the sequence runs out it either starts over or reports level.
type Script struct {
	samples []types.Vec2
	loop    bool
	next    int
}

func NewScript(samples []types.Vec2, loop bool) *Script {
	return &Script{samples: samples, loop: loop}
}

func (s *Script) ReadTilt() (float64, float64) {
	if s.next >= len(s.samples) {
		if !s.loop || len(s.samples) == 0 {
			return 0, 0
		}
		s.next = 0
	}
	sample := s.samples[s.next]
	s.next++
	if !Finite(sample.X, sample.Y) {
		return 0, 0
	}
	return sample.X, sample.Y
}

// Sweep builds a script that swings the tilt once around a full circle over
// period samples at the given raw magnitude, starting toward screen right.
func Sweep(period int, magnitude float64) []types.Vec2 {
	samples := make([]types.Vec2, period)
	for i := range samples {
		angle := 2 * math.Pi * float64(i) / float64(period)
		x, y := FromScreen(magnitude*math.Cos(angle), magnitude*math.Sin(angle))
		samples[i] = types.Vec2{X: x, Y: y}
	}
	return samples
}
