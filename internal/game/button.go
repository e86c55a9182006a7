package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type button struct {
	label      string
	x, y, w, h int
	hovered    bool
	pressed    bool
	onClick    func()
}

func (b *button) contains(x, y int) bool {
	return x >= b.x && x <= b.x+b.w && y >= b.y && y <= b.y+b.h
}

// update tracks hover and press state and fires onClick on a release over the
// button that started on it. It reports whether the button took the press.
func (b *button) update(mouseX, mouseY int, justPressed, justReleased bool) bool {
	b.hovered = b.contains(mouseX, mouseY)
	took := false
	if b.hovered && justPressed {
		b.pressed = true
		took = true
	}
	if justReleased {
		if b.pressed && b.hovered && b.onClick != nil {
			b.onClick()
		}
		b.pressed = false
	}
	return took
}

func (b *button) draw(screen *ebiten.Image) {
	var bgColor color.Color
	if b.pressed {
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255} // Pressed
	} else if b.hovered {
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255} // Hovered
	} else {
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255} // Normal
	}
	vector.DrawFilledRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), bgColor, false)

	borderColor := color.RGBA{R: 150, G: 170, B: 200, A: 255}
	vector.StrokeRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), 2, borderColor, false)

	textWidth := len(b.label) * 6 // debug font glyphs are 6px wide
	textX := b.x + (b.w-textWidth)/2
	textY := b.y + (b.h-16)/2
	ebitenutil.DebugPrintAt(screen, b.label, textX, textY)
}
