package battery

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// overlayRefresh is how often, in seconds, the stats overlay text changes.
const overlayRefresh = 0.5

// statsOverlay draws FPS, TPS, and battery state in the top-left corner.
type statsOverlay struct {
	img     *ebiten.Image
	text    string
	elapsed float64
}

// update rebuilds the overlay text every overlayRefresh seconds.
func (o *statsOverlay) update(dt float64, s *Stage) {
	o.elapsed += dt
	if o.text != "" && o.elapsed < overlayRefresh {
		return
	}
	o.elapsed = 0
	o.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\npage: %s\nscroll: %.0f",
		ebiten.ActualFPS(), ebiten.ActualTPS(), s.doc.Current(), s.doc.ScrollY())
}

func (o *statsOverlay) draw(screen *ebiten.Image) {
	if o.img == nil {
		o.img = ebiten.NewImage(140, 64)
	}
	o.img.Clear()
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
	screen.DrawImage(o.img, nil)
}
