package ui

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// TitleScreen represents the main title screen
type TitleScreen struct {
	startTime      time.Time
	highScore      int
	onStartPressed func() // Callback when user presses to start
}

// NewTitleScreen creates a new title screen showing the best run so far
func NewTitleScreen(highScore int, onStartPressed func()) *TitleScreen {
	return &TitleScreen{
		startTime:      time.Now(),
		highScore:      highScore,
		onStartPressed: onStartPressed,
	}
}

// Update handles input for the title screen
func (ts *TitleScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if ts.onStartPressed != nil {
			ts.onStartPressed()
		}
	}
	return nil
}

// Draw renders the title screen
func (ts *TitleScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	screen.Fill(color.RGBA{15, 20, 35, 255})

	elapsed := time.Since(ts.startTime).Seconds()
	centerX := float64(width) / 2
	centerY := float64(height) / 3

	drawScrollingLanes(screen, width, height, elapsed)

	// Pulsing title (1.0 to 1.1)
	pulse := 1.0 + 0.1*math.Sin(elapsed*2.0)
	brightness := min(1.0, 1.0+0.2*math.Sin(elapsed*1.5))
	titleColor := color.RGBA{
		uint8(255 * brightness),
		uint8(200 * brightness),
		uint8(50 * brightness),
		255,
	}
	DrawText(screen, "CUT UP", centerX, centerY, 80*pulse, titleColor)
	DrawText(screen, "Traffic Weaving", centerX, centerY+70, 28, color.RGBA{180, 180, 200, 255})

	if ts.highScore > 0 {
		DrawText(screen, fmt.Sprintf("BEST RUN  $%d", ts.highScore), centerX, centerY+130, 20, ColorMoney)
	}

	// Blink every 0.5 seconds
	if int(elapsed*2)%2 == 0 {
		DrawText(screen, "Press ENTER or SPACE", centerX, float64(height)-120, 22, color.RGBA{150, 200, 255, 255})
	}

	lineColor := color.RGBA{50, 60, 80, 100}
	FillRect(screen, 0, float64(height)/6, float64(width), 2, lineColor)
	FillRect(screen, 0, float64(height)*5/6, float64(width), 2, lineColor)
}

// drawScrollingLanes draws dashed lane markers drifting down behind the title
func drawScrollingLanes(screen *ebiten.Image, width, height int, elapsed float64) {
	const dash, gap = 30.0, 50.0
	offset := math.Mod(elapsed*200, dash+gap)
	markerColor := color.RGBA{40, 45, 70, 255}

	for lane := 1; lane < 5; lane++ {
		x := float64(width) * float64(lane) / 5
		for y := -dash + offset; y < float64(height); y += dash + gap {
			FillRect(screen, x-2, y, 4, dash, markerColor)
		}
	}
}
