// Package sensor provides tilt sources for the host loop.
//
// Readings are in the board's mounting frame and raw accelerometer counts, the
// same units an LSM6DS3 at its default range reports (about 16384 per g).
// Every sensor hands the simulator finite numbers only.
package sensor

import "math"

// OneG is the raw count for one g of tilt.
const OneG = 16384.0

// Sensor supplies one tilt sample per frame.
type Sensor interface {
	ReadTilt() (tiltX, tiltY float64)
}

// Func adapts a plain function to Sensor.
type Func func() (tiltX, tiltY float64)

func (f Func) ReadTilt() (float64, float64) { return f() }

// Finite reports whether both components can be fed to the simulator.
func Finite(tiltX, tiltY float64) bool {
	return !math.IsNaN(tiltX) && !math.IsInf(tiltX, 0) && !math.IsNaN(tiltY) && !math.IsInf(tiltY, 0)
}

// FromScreen rotates a screen-aligned tilt (right, down) into the mounting
// frame the simulator expects: screen X comes from the sensor's Y axis and
// screen Y from its inverted X axis.
func FromScreen(right, down float64) (tiltX, tiltY float64) {
	return -down, right
}
