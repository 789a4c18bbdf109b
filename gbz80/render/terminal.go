// Package render implements the default tcell-backed terminal Backend:
// each pair of framebuffer rows becomes one character cell using a
// half-block glyph with independently colored top/bottom halves, per
// SPEC_FULL.md §10.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/corvid-labs/gbz80/input"
	"github.com/corvid-labs/gbz80/video"
)

// Terminal is a backend.Backend implementation backed by tcell.
type Terminal struct {
	screen tcell.Screen
}

// NewTerminal creates an uninitialized Terminal backend.
func NewTerminal() *Terminal {
	return &Terminal{}
}

func (t *Terminal) Init() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("render: failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("render: failed to initialize terminal: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()
	t.screen = screen
	return nil
}

func (t *Terminal) Cleanup() error {
	if t.screen != nil {
		t.screen.Fini()
	}
	return nil
}

// Update draws one frame and drains pending key events, feeding joypad
// presses to mgr and returning the emulator-level actions observed.
func (t *Terminal) Update(fb *video.FrameBuffer, mgr *input.Manager) ([]input.Action, error) {
	t.draw(fb)
	t.screen.Show()
	return t.poll(mgr), nil
}

func (t *Terminal) draw(fb *video.FrameBuffer) {
	for textRow := 0; textRow*2 < video.Height; textRow++ {
		topRow := textRow * 2
		bottomRow := topRow + 1

		for x := 0; x < video.Width; x++ {
			top := toTcellColor(fb.At(x, topRow))
			bottom := top
			if bottomRow < video.Height {
				bottom = toTcellColor(fb.At(x, bottomRow))
			}
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			t.screen.SetContent(x, textRow, '▀', nil, style)
		}
	}
}

func toTcellColor(pixel uint32) tcell.Color {
	r := uint8(pixel >> 24)
	g := uint8(pixel >> 16)
	b := uint8(pixel >> 8)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// poll drains every buffered tcell event without blocking and translates
// key events through input.DefaultKeyMap.
func (t *Terminal) poll(mgr *input.Manager) []input.Action {
	var emulatorActions []input.Action

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			name := keyName(ev)
			action := input.Lookup(name)
			if action == input.ActionNone {
				continue
			}
			if result := mgr.Dispatch(action, true); result != input.ActionNone {
				emulatorActions = append(emulatorActions, result)
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	return emulatorActions
}

func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "Up"
	case tcell.KeyDown:
		return "Down"
	case tcell.KeyLeft:
		return "Left"
	case tcell.KeyRight:
		return "Right"
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyEscape:
		return "Escape"
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return "Space"
		}
		return string(ev.Rune())
	default:
		return ""
	}
}
