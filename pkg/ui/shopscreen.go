package ui

import (
	"fmt"
	"image/color"

	"github.com/golangdaddy/cutup/pkg/data"
	"github.com/golangdaddy/cutup/pkg/models/profile"
	"github.com/golangdaddy/cutup/pkg/upgrade"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ShopScreen sells upgrade levels for one owned vehicle
type ShopScreen struct {
	save          *profile.SaveProfile
	vehicleID     string
	selectedIndex int
	message       string
	messageColor  color.Color
	onChange      func() // Callback after a purchase
	onExit        func()
}

// NewShopScreen creates the upgrade shop for a vehicle
func NewShopScreen(save *profile.SaveProfile, vehicleID string, onChange, onExit func()) *ShopScreen {
	return &ShopScreen{
		save:      save,
		vehicleID: vehicleID,
		onChange:  onChange,
		onExit:    onExit,
	}
}

// Update handles input for the shop screen
func (ss *ShopScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		if ss.onExit != nil {
			ss.onExit()
		}
		return nil
	}

	count := len(data.Upgrades)
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyW) {
		ss.selectedIndex = (ss.selectedIndex - 1 + count) % count
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyS) {
		ss.selectedIndex = (ss.selectedIndex + 1) % count
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		u := data.Upgrades[ss.selectedIndex]
		res, err := upgrade.PurchaseUpgrade(ss.save, ss.vehicleID, u.ID)
		if err != nil {
			ss.message = errorText(err)
			ss.messageColor = ColorError
			return nil
		}
		ss.message = fmt.Sprintf("%s level %d for $%d", u.Name, res.NewLevel, res.Cost)
		ss.messageColor = ColorMoney
		if ss.onChange != nil {
			ss.onChange()
		}
	}
	return nil
}

// Draw renders the shop screen
func (ss *ShopScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	screen.Fill(color.RGBA{40, 40, 50, 255})

	centerX := float64(width) / 2
	def, _ := data.Vehicle(ss.vehicleID)
	DrawText(screen, "UPGRADES", centerX, 50, 36, ColorGold)
	DrawText(screen, def.Name, centerX, 90, 18, def.Color)
	DrawText(screen, fmt.Sprintf("$%d", ss.save.Money), centerX, 120, 20, ColorMoney)

	startY := 160.0
	rowSpacing := 90.0
	rowX := 20.0
	rowWidth := float64(width) - 40

	for i, u := range data.Upgrades {
		y := startY + float64(i)*rowSpacing
		level := ss.save.Level(ss.vehicleID, u.ID)

		bg, fg := ColorPanel, ColorText
		if i == ss.selectedIndex {
			bg, fg = ColorHighlight, ColorTextBright
		}
		FillRect(screen, rowX, y, rowWidth, rowSpacing-12, bg)
		StrokeRect(screen, rowX, y, rowWidth, rowSpacing-12, 2, ColorBorder)

		DrawTextAt(screen, u.Name, rowX+12, y+8, 18, fg)
		DrawTextAt(screen, u.Description, rowX+12, y+30, 12, ColorMuted)
		drawPips(screen, rowX+12, y+52, level, u.MaxLevel)

		price := "MAX"
		priceColor := ColorGold
		if cost, err := upgrade.CostOf(u.ID, level); err == nil {
			price = fmt.Sprintf("$%d", cost)
			priceColor = ColorMuted
			if ss.save.Money >= cost {
				priceColor = ColorMoney
			}
		}
		DrawTextAt(screen, price, rowX+rowWidth-100, y+8, 16, priceColor)
	}

	if ss.message != "" {
		DrawText(screen, ss.message, centerX, float64(height)-80, 14, ss.messageColor)
	}
	DrawText(screen, "Enter: Buy | Esc: Back to garage", centerX, float64(height)-40, 12, ColorMuted)
}

// drawPips draws one box per upgrade level, filled up to the current level
func drawPips(screen *ebiten.Image, x, y float64, level, maxLevel int) {
	const size, gap = 14.0, 6.0
	for i := 0; i < maxLevel; i++ {
		px := x + float64(i)*(size+gap)
		if i < level {
			FillRect(screen, px, y, size, size, ColorGold)
		}
		StrokeRect(screen, px, y, size, size, 1, ColorBorder)
	}
}
