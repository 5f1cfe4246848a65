package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and draws them on
// the screen. Each terminal row holds two pixel rows: ▀ with the top
// pixel as foreground and the bottom pixel as background.
// The framebuffer height should be 2x the terminal height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: fb.RGBAAt(col, topY),
					Bg: fb.RGBAAt(col, botY),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}
