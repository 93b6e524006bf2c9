package window

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"mercury-maze/game/types"
	"mercury-maze/sensor"
	"mercury-maze/ui"
)

const statusFontSize = 10

var pens = map[ui.Pen]rl.Color{
	ui.PenBackground: rl.Black,
	ui.PenWall:       rl.White,
	ui.PenBlob:       {R: 192, G: 192, B: 192, A: 255}, // silver
	ui.PenHighlight:  rl.White,
}

// Surface draws into a raylib window, scaling every surface pixel to a
// scale x scale block so a 320x240 display is readable on a desktop.
type Surface struct {
	scale int32
}

// Open creates the window. Only one may exist per process.
func Open(size types.Size, scale int, title string) *Surface {
	s := &Surface{scale: int32(scale)}
	rl.InitWindow(int32(size.Width)*s.scale, int32(size.Height)*s.scale, title)
	return s
}

func (s *Surface) Clear() {
	rl.BeginDrawing()
	rl.ClearBackground(pens[ui.PenBackground])
}

func (s *Surface) FillRect(x, y, w, h int, pen ui.Pen) {
	rl.DrawRectangle(int32(x)*s.scale, int32(y)*s.scale, int32(w)*s.scale, int32(h)*s.scale, pens[pen])
}

func (s *Surface) FillCircle(x, y, r int, pen ui.Pen) {
	rl.DrawCircle(int32(x)*s.scale, int32(y)*s.scale, float32(int32(r)*s.scale), pens[pen])
}

func (s *Surface) Annotate(line string) {
	rl.DrawText(line, 4*s.scale, 4*s.scale, statusFontSize*s.scale, rl.Green)
}

func (s *Surface) Present() {
	rl.EndDrawing()
}

// ShouldClose reports whether the user asked to close the window.
func (s *Surface) ShouldClose() bool {
	return rl.WindowShouldClose()
}

func (s *Surface) Close() {
	rl.CloseWindow()
}

// HeldKeys reads arrow keys and WASD for the keyboard tilt sensor.
func (s *Surface) HeldKeys() sensor.Keys {
	return sensor.Keys{
		Up:    rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW),
		Down:  rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS),
		Left:  rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA),
		Right: rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD),
	}
}
