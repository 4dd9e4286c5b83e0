// Package background paints the roadside verges scrolling beside the road.
package background

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"
)

// Generator creates vertically tileable verge textures
type Generator struct {
	Width  int
	Height int
}

// NewGenerator creates a new verge generator
func NewGenerator(width, height int) *Generator {
	return &Generator{
		Width:  width,
		Height: height,
	}
}

var (
	grassColor = color.RGBA{30, 100, 30, 255}
	trunkColor = color.RGBA{60, 40, 20, 255}
	kerbLight  = color.RGBA{220, 220, 220, 255}
	kerbDark   = color.RGBA{200, 40, 40, 255}
)

// KerbBand is the height of one kerb stripe; textures tile cleanly when Height is a multiple of twice this
const KerbBand = 20

// GenerateVerge paints grass with bushes and trees and a striped kerb along the road edge.
// roadSide is the column the kerb is painted on: 0 for a left verge, Width-1 for a right one.
// The texture wraps vertically so it can be drawn twice to scroll endlessly.
func (g *Generator) GenerateVerge(seed uint64, roadSide int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	if g.Width <= 0 || g.Height <= 0 {
		return img
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			img.SetRGBA(x, y, grassColor)
		}
	}

	// Grass noise
	for i := 0; i < g.Width*g.Height/10; i++ {
		shade := uint8(80 + rng.IntN(60))
		g.set(img, rng.IntN(g.Width), rng.IntN(g.Height), color.RGBA{30, shade, 30, 255})
	}

	for y := 0; y < g.Height; y += 12 {
		density := 0.4 + 0.3*math.Sin(float64(y)*2*math.Pi/float64(g.Height))
		for x := 0; x < g.Width; x += 8 + rng.IntN(12) {
			if rng.Float64() > density {
				continue
			}
			drawX := x + rng.IntN(6) - 3
			drawY := y + rng.IntN(6) - 3
			if rng.Float64() < 0.3 {
				g.drawTree(img, drawX, drawY, rng)
			} else {
				g.drawBush(img, drawX, drawY, rng)
			}
		}
	}

	g.drawKerb(img, roadSide)
	return img
}

// set writes a pixel, wrapping vertically and clipping horizontally
func (g *Generator) set(img *image.RGBA, x, y int, c color.RGBA) {
	if x < 0 || x >= g.Width {
		return
	}
	y %= g.Height
	if y < 0 {
		y += g.Height
	}
	img.SetRGBA(x, y, c)
}

// drawTree draws a pine seen from above: a dark ring around a lighter crown
func (g *Generator) drawTree(img *image.RGBA, x, y int, rng *rand.Rand) {
	radius := 6 + rng.IntN(5)
	base := uint8(50 + rng.IntN(30))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d := math.Sqrt(float64(dx*dx + dy*dy))
			if d > float64(radius) {
				continue
			}
			shade := base + uint8(30*(1-d/float64(radius)))
			g.set(img, x+dx, y+dy, color.RGBA{15, shade, 20, 255})
		}
	}
	g.set(img, x, y, trunkColor)
}

// drawBush draws a small irregular clump
func (g *Generator) drawBush(img *image.RGBA, x, y int, rng *rand.Rand) {
	radius := 2 + rng.IntN(3)
	shade := uint8(110 + rng.IntN(60))
	c := color.RGBA{40, shade, 40, 255}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius && rng.Float64() > 0.15 {
				g.set(img, x+dx, y+dy, c)
			}
		}
	}
}

// drawKerb paints alternating red and white bands on the road-side column
func (g *Generator) drawKerb(img *image.RGBA, roadSide int) {
	const kerbWidth = 4
	left := roadSide
	if roadSide >= g.Width/2 {
		left = roadSide - kerbWidth + 1
	}
	for y := 0; y < g.Height; y++ {
		c := kerbLight
		if (y/KerbBand)%2 == 1 {
			c = kerbDark
		}
		for x := left; x < left+kerbWidth; x++ {
			g.set(img, x, y, c)
		}
	}
}
