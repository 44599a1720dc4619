package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	uv "github.com/charmbracelet/ultraviolet"
)

// CellSetter is the part of uv.Screen that Draw needs.
type CellSetter interface {
	SetCell(x, y int, c *uv.Cell)
}

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. The framebuffer height should be 2x the terminal height.
func (fb *Framebuffer) Draw(scr CellSetter, area uv.Rectangle) {
	// Each terminal row represents 2 framebuffer rows
	// We use ▀ (upper half block) with fg=top color and bg=bottom color
	for row := area.Min.Y; row < area.Max.Y && row-area.Min.Y < fb.Rows(); row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < fb.Width; col++ {
			x := col - area.Min.X
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(x, topY)),
					Bg: rgbaToColor(fb.GetPixel(x, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// Rows returns the number of terminal rows needed to show the framebuffer.
func (fb *Framebuffer) Rows() int {
	return (fb.Height + 1) / 2
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// Canvas is an off-screen grid of terminal cells, for printing a
// framebuffer to a plain writer instead of a live terminal.
type Canvas struct {
	width, height int
	cells         []*uv.Cell
}

// NewCanvas creates a blank canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{width: width, height: height, cells: make([]*uv.Cell, width*height)}
}

// Bounds returns the full canvas area.
func (c *Canvas) Bounds() uv.Rectangle {
	return uv.Rectangle(image.Rect(0, 0, c.width, c.height))
}

// SetCell implements CellSetter. Out-of-range cells are dropped.
func (c *Canvas) SetCell(x, y int, cell *uv.Cell) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y*c.width+x] = cell
}

// CellAt returns the cell at (x, y), or nil.
func (c *Canvas) CellAt(x, y int) *uv.Cell {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return nil
	}
	return c.cells[y*c.width+x]
}

// String renders the canvas with lipgloss, one line per row. Colors are
// downsampled to whatever the output supports.
func (c *Canvas) String() string {
	var b strings.Builder
	for y := range c.height {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := range c.width {
			cell := c.cells[y*c.width+x]
			if cell == nil {
				b.WriteByte(' ')
				continue
			}
			style := lipgloss.NewStyle()
			if cell.Style.Fg != nil {
				style = style.Foreground(hex(cell.Style.Fg))
			}
			if cell.Style.Bg != nil {
				style = style.Background(hex(cell.Style.Bg))
			}
			b.WriteString(style.Render(cell.Content))
		}
	}
	return b.String()
}

func hex(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Palette used by charts and views.
var (
	ColorBlack  = color.RGBA{0, 0, 0, 255}
	ColorWhite  = color.RGBA{255, 255, 255, 255}
	ColorGray   = color.RGBA{128, 128, 128, 255}
	ColorSky    = color.RGBA{135, 206, 235, 255}
	ColorOrange = color.RGBA{255, 165, 0, 255}
	ColorGreen  = color.RGBA{0, 255, 128, 255}
	ColorRed    = color.RGBA{255, 64, 64, 255}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}
