package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow opens a desktop window presenting the framebuffer and
// calls step once per tick. It blocks until the window closes or step
// returns an error.
func RunWindow(title string, fb *Framebuffer, scale int, fps int, step func() error) error {
	if scale < 1 {
		scale = 1
	}
	g := &windowGame{fb: fb, step: step}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(fb.Width*scale, fb.Height*scale)
	ebiten.SetTPS(fps)
	return ebiten.RunGame(g)
}

type windowGame struct {
	fb      *Framebuffer
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
}

func (g *windowGame) Update() error {
	if g.step != nil {
		return g.step()
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(g.fb.Width, g.fb.Height)
		g.scratch = make([]byte, g.fb.Width*g.fb.Height*4)
	}

	g.fb.WriteRGBA(g.scratch)
	g.fbImg.WritePixels(g.scratch)
	screen.DrawImage(g.fbImg, nil)
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width, g.fb.Height
}
