package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	outlineColor    = color.RGBA{20, 20, 20, 255}
	windshieldColor = color.RGBA{150, 200, 255, 200}
	rearWindowColor = color.RGBA{20, 30, 50, 220}
	wheelColor      = color.RGBA{30, 30, 30, 255}
)

// spriteKey identifies a cached car sprite
type spriteKey struct {
	width, height int
	body          color.RGBA
}

// carSprites builds each top-down car sprite once and reuses it every frame
type carSprites struct {
	cache map[spriteKey]*ebiten.Image
}

func newCarSprites() *carSprites {
	return &carSprites{cache: make(map[spriteKey]*ebiten.Image)}
}

// draw renders a car centered at (x, y), rotated by angle degrees clockwise, bonnet up
func (cs *carSprites) draw(screen *ebiten.Image, x, y, width, height, angle float64, body color.RGBA) {
	img := cs.sprite(spriteKey{width: int(width), height: int(height), body: body})
	if img == nil {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-width/2, -height/2)
	op.GeoM.Rotate(angle * math.Pi / 180)
	op.GeoM.Translate(x, y)
	screen.DrawImage(img, op)
}

func (cs *carSprites) sprite(key spriteKey) *ebiten.Image {
	if img, ok := cs.cache[key]; ok {
		return img
	}
	if key.width <= 0 || key.height <= 0 {
		return nil
	}

	w, h := float64(key.width), float64(key.height)
	img := ebiten.NewImage(key.width, key.height)
	img.Fill(key.body)

	// Outline
	fill(img, 0, 0, w, 2, outlineColor)
	fill(img, 0, h-2, w, 2, outlineColor)
	fill(img, 0, 0, 2, h, outlineColor)
	fill(img, w-2, 0, 2, h, outlineColor)

	// Glass
	fill(img, w*0.2, h*0.18, w*0.6, h*0.2, windshieldColor)
	fill(img, w*0.2, h*0.68, w*0.6, h*0.12, rearWindowColor)

	// Wheels
	wheelW, wheelH := 6.0, 8.0
	for _, pos := range [][2]float64{
		{2, 5},
		{w - wheelW - 2, 5},
		{2, h - wheelH - 5},
		{w - wheelW - 2, h - wheelH - 5},
	} {
		fill(img, pos[0], pos[1], wheelW, wheelH, wheelColor)
	}

	cs.cache[key] = img
	return img
}

// fill paints a rectangle onto an offscreen image
func fill(img *ebiten.Image, x, y, w, h float64, clr color.Color) {
	rect := ebiten.NewImage(max(1, int(w)), max(1, int(h)))
	rect.Fill(clr)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	img.DrawImage(rect, op)
	rect.Deallocate()
}
