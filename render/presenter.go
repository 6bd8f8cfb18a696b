package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ge211/color"
)

// HalfBlock is drawn in every cell: foreground is the upper pixel,
// background the lower one
const HalfBlock = '▀'

// CellHeight is the number of canvas rows per terminal row
const CellHeight = 2

type cellColors struct {
	top, bottom color.Color
	valid       bool
}

// Presenter copies a canvas to a tcell screen, two pixel rows per cell
type Presenter struct {
	screen tcell.Screen
	prev   []cellColors
	cols   int
	rows   int
}

// NewPresenter targets screen
func NewPresenter(screen tcell.Screen) *Presenter {
	return &Presenter{screen: screen}
}

// Invalidate forces the next Present to redraw every cell
func (p *Presenter) Invalidate() {
	for i := range p.prev {
		p.prev[i].valid = false
	}
}

// Present writes changed cells and shows the screen
// Returns the number of cells written
func (p *Presenter) Present(c *Canvas) int {
	cols, rows := p.screen.Size()
	if cols != p.cols || rows != p.rows {
		p.prev = make([]cellColors, cols*rows)
		p.cols, p.rows = cols, rows
		p.screen.Clear()
	}

	img := c.Image()
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	written := 0

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := pixel(img.Pix, img.Stride, x, y*CellHeight, w, h)
			bottom := pixel(img.Pix, img.Stride, x, y*CellHeight+1, w, h)

			idx := y*cols + x
			prev := &p.prev[idx]
			if prev.valid && prev.top == top && prev.bottom == bottom {
				continue
			}
			*prev = cellColors{top: top, bottom: bottom, valid: true}

			style := tcell.StyleDefault.Foreground(top.Tcell()).Background(bottom.Tcell())
			p.screen.SetContent(x, y, HalfBlock, nil, style)
			written++
		}
	}

	p.screen.Show()
	return written
}

// pixel reads an opaque color from premultiplied RGBA bytes; outside the
// canvas reads as black
func pixel(pix []uint8, stride, x, y, w, h int) color.Color {
	if x >= w || y >= h {
		return color.Black
	}
	i := y*stride + x*4
	return color.RGB(pix[i], pix[i+1], pix[i+2])
}
