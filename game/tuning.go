package game

import (
	"fmt"
	"math"
)

// Values tuned on the Pico Display 2 with raw LSM6DS3 counts as tilt input.
const (
	DefaultRadius      = 8.0
	DefaultSpeedScale  = 0.1
	DefaultDamping     = 0.98 // lower damping keeps more momentum
	DefaultTiltDivisor = 5000.0
	DefaultStartX      = 40.0
	DefaultStartY      = 40.0
)

// Tuning holds the simulator constants. They are fixed for a simulator's lifetime.
type Tuning struct {
	Radius      float64
	SpeedScale  float64
	Damping     float64 // multiplicative, in (0,1]
	TiltDivisor float64
}

func DefaultTuning() Tuning {
	return Tuning{
		Radius:      DefaultRadius,
		SpeedScale:  DefaultSpeedScale,
		Damping:     DefaultDamping,
		TiltDivisor: DefaultTiltDivisor,
	}
}

func (t Tuning) Validate() error {
	switch {
	case !(t.Radius > 0) || math.IsInf(t.Radius, 0):
		return fmt.Errorf("%w: radius %g must be positive", ErrInvalidTuning, t.Radius)
	case !(t.SpeedScale > 0) || math.IsInf(t.SpeedScale, 0):
		return fmt.Errorf("%w: speed scale %g must be positive", ErrInvalidTuning, t.SpeedScale)
	case !(t.Damping > 0 && t.Damping <= 1):
		return fmt.Errorf("%w: damping %g must be in (0,1]", ErrInvalidTuning, t.Damping)
	case !(t.TiltDivisor > 0) || math.IsInf(t.TiltDivisor, 0):
		return fmt.Errorf("%w: tilt divisor %g must be positive", ErrInvalidTuning, t.TiltDivisor)
	}
	return nil
}
