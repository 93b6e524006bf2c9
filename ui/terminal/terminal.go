package terminal

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"mercury-maze/game/types"
	"mercury-maze/sensor"
	"mercury-maze/ui"
)

// Terminals send key presses and repeats but no releases, so a key counts as
// held for this long after its last event.
const keyHold = 250 * time.Millisecond

type glyph struct {
	r     rune
	style tcell.Style
}

var glyphs = map[ui.Pen]glyph{
	ui.PenBackground: {' ', tcell.StyleDefault},
	ui.PenWall:       {'█', tcell.StyleDefault.Foreground(tcell.ColorWhite)},
	ui.PenBlob:       {'●', tcell.StyleDefault.Foreground(tcell.ColorSilver)},
	ui.PenHighlight:  {'•', tcell.StyleDefault.Foreground(tcell.ColorWhite)},
}

// Surface renders the display onto a terminal, one character per block of
// pixels. The bottom row is kept for the status line.
type Surface struct {
	screen tcell.Screen
	size   types.Size
	now    func() time.Time

	// pixels per character, recomputed on Clear to follow resizes
	pxW, pxH int

	closed atomic.Bool
	done   chan struct{}

	mu      sync.Mutex
	pressed map[tcell.Key]time.Time
}

// Open takes over the controlling terminal.
func Open(size types.Size) (*Surface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return New(screen, size)
}

// New initialises screen and starts reading its events.
func New(screen tcell.Screen, size types.Size) (*Surface, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()

	s := &Surface{
		screen:  screen,
		size:    size,
		now:     time.Now,
		done:    make(chan struct{}),
		pressed: make(map[tcell.Key]time.Time),
	}
	s.fit()
	go s.pollEvents()
	return s, nil
}

func (s *Surface) pollEvents() {
	defer close(s.done)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			s.handleKey(ev)
		case *tcell.EventResize:
			s.screen.Sync()
		}
	}
}

func (s *Surface) handleKey(ev *tcell.EventKey) {
	key := ev.Key()
	if key == tcell.KeyRune {
		switch ev.Rune() {
		case 'q', 'Q':
			key = tcell.KeyEscape
		case 'w', 'W':
			key = tcell.KeyUp
		case 's', 'S':
			key = tcell.KeyDown
		case 'a', 'A':
			key = tcell.KeyLeft
		case 'd', 'D':
			key = tcell.KeyRight
		}
	}

	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		s.closed.Store(true)
	case tcell.KeyUp, tcell.KeyDown, tcell.KeyLeft, tcell.KeyRight:
		s.mu.Lock()
		s.pressed[key] = s.now()
		s.mu.Unlock()
	}
}

// HeldKeys reports direction keys pressed within the hold window.
func (s *Surface) HeldKeys() sensor.Keys {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	held := func(k tcell.Key) bool {
		t, ok := s.pressed[k]
		return ok && now.Sub(t) <= keyHold
	}
	return sensor.Keys{
		Up:    held(tcell.KeyUp),
		Down:  held(tcell.KeyDown),
		Left:  held(tcell.KeyLeft),
		Right: held(tcell.KeyRight),
	}
}

func (s *Surface) ShouldClose() bool {
	return s.closed.Load()
}

// Close restores the terminal and waits for the event reader to stop.
func (s *Surface) Close() {
	s.screen.Fini()
	<-s.done
}

// fit picks the smallest block size that shows the whole surface, keeping
// blocks twice as tall as wide to match character cells.
func (s *Surface) fit() {
	cols, rows := s.screen.Size()
	rows-- // status line
	if cols < 1 || rows < 1 {
		s.pxW, s.pxH = s.size.Width, s.size.Height
		return
	}

	pxW := ceilDiv(s.size.Width, cols)
	pxH := ceilDiv(s.size.Height, rows)
	if pxH < 2*pxW {
		pxH = 2 * pxW
	} else {
		pxW = ceilDiv(pxH, 2)
	}
	s.pxW, s.pxH = pxW, pxH
}

func (s *Surface) Clear() {
	s.fit()
	s.screen.Clear()
}

// FillRect fills every character whose centre lies inside the rectangle.
func (s *Surface) FillRect(x, y, w, h int, pen ui.Pen) {
	g := glyphs[pen]
	for row := 0; ; row++ {
		cy := row*s.pxH + s.pxH/2
		if cy >= y+h || cy >= s.size.Height {
			break
		}
		if cy < y {
			continue
		}
		for col := 0; ; col++ {
			cx := col*s.pxW + s.pxW/2
			if cx >= x+w || cx >= s.size.Width {
				break
			}
			if cx >= x {
				s.screen.SetContent(col, row, g.r, nil, g.style)
			}
		}
	}
}

// FillCircle fills every character whose centre lies within r of (x, y), and
// always the character containing (x, y) so small circles stay visible.
func (s *Surface) FillCircle(x, y, r int, pen ui.Pen) {
	g := glyphs[pen]
	if x >= 0 && y >= 0 {
		s.screen.SetContent(x/s.pxW, y/s.pxH, g.r, nil, g.style)
	}

	minCol, maxCol := max(0, (x-r)/s.pxW), (x+r)/s.pxW
	minRow, maxRow := max(0, (y-r)/s.pxH), (y+r)/s.pxH
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			dx := col*s.pxW + s.pxW/2 - x
			dy := row*s.pxH + s.pxH/2 - y
			if dx*dx+dy*dy <= r*r {
				s.screen.SetContent(col, row, g.r, nil, g.style)
			}
		}
	}
}

func (s *Surface) Annotate(line string) {
	_, rows := s.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	for i, r := range line {
		s.screen.SetContent(i, rows-1, r, nil, style)
	}
}

func (s *Surface) Present() {
	s.screen.Show()
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
