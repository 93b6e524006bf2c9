package sensor

// Keys is the set of direction keys currently held.
type Keys struct {
	Up, Down, Left, Right bool
}

// KeySource reports held direction keys, e.g. from a window or terminal.
type KeySource interface {
	HeldKeys() Keys
}

// Keyboard emulates tilting the board with direction keys.
type Keyboard struct {
	src       KeySource
	magnitude float64
}

// NewKeyboard tilts by magnitude raw counts per held key; zero picks half a g.
func NewKeyboard(src KeySource, magnitude float64) *Keyboard {
	if magnitude == 0 {
		magnitude = OneG / 2
	}
	return &Keyboard{src: src, magnitude: magnitude}
}

func (k *Keyboard) ReadTilt() (float64, float64) {
	keys := k.src.HeldKeys()

	var right, down float64
	if keys.Right {
		right += k.magnitude
	}
	if keys.Left {
		right -= k.magnitude
	}
	if keys.Down {
		down += k.magnitude
	}
	if keys.Up {
		down -= k.magnitude
	}
	return FromScreen(right, down)
}
