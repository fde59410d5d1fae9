package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget is what the panel stacks vertically.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	Height() float64
}

// Panel lays widgets out in a vertical stack over a translucent
// background.
type Panel struct {
	X, Y          float64
	Width, Height float64
	widgets       []Widget
	nextY         float64
}

// NewPanel creates an empty panel at the given position.
func NewPanel(x, y, width, height float64) *Panel {
	return &Panel{X: x, Y: y, Width: width, Height: height, nextY: y + 26}
}

// AddSlider appends a slider and returns it for value access.
func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := &Slider{
		Label: label, Min: min, Max: max, Value: value,
		X: p.X + 10, Y: p.nextY + 16, W: p.Width - 20, H: 10,
	}
	p.widgets = append(p.widgets, s)
	p.nextY += s.Height() + 6
	return s
}

// AddCheckbox appends a checkbox and returns it for value access.
func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := &Checkbox{Label: label, Value: value, X: p.X + 10, Y: p.nextY, Size: 16}
	p.widgets = append(p.widgets, c)
	p.nextY += c.Height() + 6
	return c
}

// Update updates all widgets.
func (p *Panel) Update() {
	for _, w := range p.widgets {
		w.Update()
	}
}

// Draw renders the background and all widgets.
func (p *Panel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height),
		color.RGBA{R: 40, G: 40, B: 45, A: 220}, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height),
		1, color.RGBA{R: 100, G: 100, B: 110, A: 255}, true)
	for _, w := range p.widgets {
		w.Draw(screen)
	}
}
