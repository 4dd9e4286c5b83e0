package ui

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/golangdaddy/cutup/pkg/data"
	"github.com/golangdaddy/cutup/pkg/models/car"
	"github.com/golangdaddy/cutup/pkg/models/profile"
	"github.com/golangdaddy/cutup/pkg/upgrade"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// GarageScreen lists the vehicles for buying and selecting
type GarageScreen struct {
	save          *profile.SaveProfile
	selectedIndex int
	message       string
	messageColor  color.Color
	onStart       func()       // Callback to start a run with the selected vehicle
	onShop        func(string) // Callback to open the upgrade shop for a vehicle
	onChange      func()       // Callback after the save was modified
	onBack        func()
}

// NewGarageScreen creates a garage for the given save, highlighting the selected vehicle
func NewGarageScreen(save *profile.SaveProfile, onStart func(), onShop func(string), onChange func(), onBack func()) *GarageScreen {
	gs := &GarageScreen{
		save:     save,
		onStart:  onStart,
		onShop:   onShop,
		onChange: onChange,
		onBack:   onBack,
	}
	for i, v := range data.Vehicles {
		if v.ID == save.SelectedVehicleID {
			gs.selectedIndex = i
		}
	}
	return gs
}

func (gs *GarageScreen) highlighted() car.Definition {
	return data.Vehicles[gs.selectedIndex]
}

// Update handles input for the garage screen
func (gs *GarageScreen) Update() error {
	count := len(data.Vehicles)
	if count == 0 {
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyW) {
		gs.selectedIndex = (gs.selectedIndex - 1 + count) % count
		gs.message = ""
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyS) {
		gs.selectedIndex = (gs.selectedIndex + 1) % count
		gs.message = ""
	}

	def := gs.highlighted()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		gs.activate(def)
	case inpututil.IsKeyJustPressed(ebiten.KeyU):
		if !gs.save.Owns(def.ID) {
			gs.fail(upgrade.ErrVehicleLocked)
			return nil
		}
		if gs.onShop != nil {
			gs.onShop(def.ID)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		if gs.onBack != nil {
			gs.onBack()
		}
	}
	return nil
}

// activate buys a locked vehicle, or selects an owned one and starts a run
func (gs *GarageScreen) activate(def car.Definition) {
	if !gs.save.Owns(def.ID) {
		res, err := upgrade.PurchaseVehicle(gs.save, def.ID)
		if err != nil {
			gs.fail(err)
			return
		}
		gs.succeed(fmt.Sprintf("Bought %s for $%d", def.Name, res.Cost))
		return
	}

	if err := upgrade.SelectVehicle(gs.save, def.ID); err != nil {
		gs.fail(err)
		return
	}
	if gs.onChange != nil {
		gs.onChange()
	}
	if gs.onStart != nil {
		gs.onStart()
	}
}

func (gs *GarageScreen) succeed(msg string) {
	gs.message = msg
	gs.messageColor = ColorMoney
	if gs.onChange != nil {
		gs.onChange()
	}
}

func (gs *GarageScreen) fail(err error) {
	gs.message = errorText(err)
	gs.messageColor = ColorError
}

// Draw renders the garage screen
func (gs *GarageScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	screen.Fill(ColorBackground)

	centerX := float64(width) / 2
	DrawText(screen, "GARAGE", centerX, 40, 40, ColorGold)
	DrawText(screen, fmt.Sprintf("$%d", gs.save.Money), centerX, 80, 20, ColorMoney)

	startY := 110.0
	rowSpacing := 52.0
	rowHeight := 44.0
	rowWidth := float64(width) - 40
	rowX := 20.0

	for i, def := range data.Vehicles {
		y := startY + float64(i)*rowSpacing

		bg, fg := ColorPanel, ColorText
		if i == gs.selectedIndex {
			bg, fg = ColorHighlight, ColorTextBright
		}
		FillRect(screen, rowX, y, rowWidth, rowHeight, bg)
		StrokeRect(screen, rowX, y, rowWidth, rowHeight, 2, ColorBorder)
		FillRect(screen, rowX+10, y+8, 16, rowHeight-16, def.Color)
		DrawTextAt(screen, def.Name, rowX+36, y+6, 16, fg)
		DrawTextAt(screen, gs.status(def), rowX+36, y+24, 12, gs.statusColor(def))
	}

	gs.drawStats(screen, startY+float64(len(data.Vehicles))*rowSpacing+10, float64(width))

	if gs.message != "" {
		DrawText(screen, gs.message, centerX, float64(height)-80, 14, gs.messageColor)
	}
	DrawText(screen, "Enter: Buy/Drive | U: Upgrades | Esc: Back", centerX, float64(height)-40, 12, ColorMuted)
}

// status formats ownership and price for one row
func (gs *GarageScreen) status(def car.Definition) string {
	switch {
	case def.ID == gs.save.SelectedVehicleID:
		return "SELECTED"
	case gs.save.Owns(def.ID):
		return "OWNED"
	default:
		return fmt.Sprintf("$%d", def.UnlockCost)
	}
}

func (gs *GarageScreen) statusColor(def car.Definition) color.Color {
	switch {
	case def.ID == gs.save.SelectedVehicleID:
		return ColorGold
	case gs.save.Owns(def.ID):
		return ColorMoney
	case gs.save.Money >= def.UnlockCost:
		return ColorText
	default:
		return ColorMuted
	}
}

// drawStats shows the effective stats of the highlighted vehicle
func (gs *GarageScreen) drawStats(screen *ebiten.Image, y, width float64) {
	def := gs.highlighted()
	stats := def.BaseStats
	if gs.save.Owns(def.ID) {
		if s, err := upgrade.StatsFor(gs.save, def.ID); err == nil {
			stats = s
		}
	}

	DrawText(screen, def.Description, width/2, y+8, 12, ColorMuted)

	bars := []struct {
		label string
		value int
	}{
		{"SPEED", stats.TopSpeed},
		{"ACCEL", stats.Acceleration},
		{"HANDLING", stats.Handling},
		{"BOOST", stats.Boost},
	}
	for i, bar := range bars {
		rowY := y + 28 + float64(i)*22
		DrawTextAt(screen, bar.label, 30, rowY, 12, ColorText)
		DrawMeter(screen, 130, rowY, width-230, 14, float64(bar.value)/200, def.Color)
		DrawTextAt(screen, fmt.Sprintf("%d", bar.value), width-90, rowY, 12, ColorText)
	}
	DrawTextAt(screen, fmt.Sprintf("EARNINGS x%.2f", stats.EarningsMultiplier), 30, y+28+4*22, 12, ColorMoney)
}

// errorText turns a purchase error into a player-facing message
func errorText(err error) string {
	switch {
	case errors.Is(err, upgrade.ErrNotEnoughMoney):
		return "Not enough money"
	case errors.Is(err, upgrade.ErrMaxLevel):
		return "Already at max level"
	case errors.Is(err, upgrade.ErrAlreadyOwned):
		return "Already owned"
	case errors.Is(err, upgrade.ErrVehicleLocked):
		return "Buy this vehicle first"
	default:
		return err.Error()
	}
}
