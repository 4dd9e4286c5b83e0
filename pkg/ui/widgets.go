package ui

import (
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Palette shared by every screen
var (
	ColorBackground = color.RGBA{20, 20, 30, 255}
	ColorPanel      = color.RGBA{40, 40, 60, 255}
	ColorHighlight  = color.RGBA{60, 100, 140, 255}
	ColorBorder     = color.RGBA{80, 80, 100, 255}
	ColorText       = color.RGBA{255, 255, 255, 255}
	ColorTextBright = color.RGBA{200, 240, 255, 255}
	ColorMuted      = color.RGBA{150, 150, 150, 255}
	ColorGold       = color.RGBA{255, 200, 50, 255}
	ColorMoney      = color.RGBA{0, 255, 136, 255}
	ColorError      = color.RGBA{255, 90, 90, 255}
)

// glyphHeight is the bitmap font's natural line height
const glyphHeight = 16.0

var (
	face  = text.NewGoXFace(bitmapfont.Face)
	pixel *ebiten.Image
)

func whitePixel() *ebiten.Image {
	if pixel == nil {
		pixel = ebiten.NewImage(1, 1)
		pixel.Fill(color.White)
	}
	return pixel
}

// FillRect draws a solid rectangle
func FillRect(screen *ebiten.Image, x, y, width, height float64, clr color.Color) {
	if width <= 0 || height <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(width, height)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	screen.DrawImage(whitePixel(), op)
}

// StrokeRect draws a rectangle outline of the given thickness
func StrokeRect(screen *ebiten.Image, x, y, width, height, thickness float64, clr color.Color) {
	FillRect(screen, x, y, width, thickness, clr)
	FillRect(screen, x, y+height-thickness, width, thickness, clr)
	FillRect(screen, x, y, thickness, height, clr)
	FillRect(screen, x+width-thickness, y, thickness, height, clr)
}

// DrawButton draws a button with background, border and centered label
func DrawButton(screen *ebiten.Image, label string, x, y, width, height float64, bgColor, textColor color.Color) {
	FillRect(screen, x, y, width, height, bgColor)
	StrokeRect(screen, x, y, width, height, 2, ColorBorder)
	DrawText(screen, label, x+width/2, y+height/2, glyphHeight, textColor)
}

// DrawText draws text centered at (centerX, centerY) at the given pixel size
func DrawText(screen *ebiten.Image, str string, centerX, centerY float64, size float64, clr color.Color) {
	scale := size / glyphHeight
	width := text.Advance(str, face) * scale

	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(centerX-width/2, centerY-size/2)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// DrawTextAt draws text with its top-left corner at (x, y)
func DrawTextAt(screen *ebiten.Image, str string, x, y float64, size float64, clr color.Color) {
	scale := size / glyphHeight

	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// DrawMeter draws a horizontal progress bar filled to fraction
func DrawMeter(screen *ebiten.Image, x, y, width, height, fraction float64, fill color.Color) {
	fraction = max(0, min(1, fraction))
	FillRect(screen, x, y, width, height, ColorPanel)
	FillRect(screen, x+2, y+2, (width-4)*fraction, height-4, fill)
	StrokeRect(screen, x, y, width, height, 1, ColorBorder)
}
