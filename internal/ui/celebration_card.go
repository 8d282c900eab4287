package ui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-birthday-wish/internal/config"
	"github.com/tartampluch/go-birthday-wish/internal/engine"
)

// celebrationCard is the second screen: candles, balloons and the
// celebrate button.
type celebrationCard struct {
	candles      []*ItemToken
	balloons     []*ItemToken
	celebrateBtn *widget.Button
	exportBtn    *widget.Button
	view         fyne.CanvasObject
}

// buildCelebrationCard creates the card for a submitted session.
func (app *WishApp) buildCelebrationCard(snap engine.Snapshot) *celebrationCard {
	c := &celebrationCard{}

	// --- 1. Header ---
	name := widget.NewLabel(snap.Input.Name)
	name.Alignment = fyne.TextAlignCenter
	name.TextStyle = fyne.TextStyle{Bold: true}

	date := widget.NewLabel(app.FormatBirthday(snap.Input.Birthday))
	date.Alignment = fyne.TextAlignCenter

	// --- 2. Candles ---
	candleRow := container.NewHBox()
	for i := 0; i < snap.TotalCandles; i++ {
		t := NewItemToken(TokenCandle, i, parseHexColor(app.Settings.ItemColor(i)), func(index int) {
			app.Session.AdvanceCandle(index)
			app.sync()
		})
		c.candles = append(c.candles, t)
		candleRow.Add(t)
	}

	// --- 3. Balloons ---
	balloonRow := container.NewHBox()
	for i := 0; i < snap.TotalBalloons; i++ {
		t := NewItemToken(TokenBalloon, i, parseHexColor(app.Settings.ItemColor(i)), func(index int) {
			app.Session.AdvanceBalloon(index)
			app.sync()
		})
		c.balloons = append(c.balloons, t)
		balloonRow.Add(t)
	}

	// --- 4. Actions ---
	gift := theme.NewThemedResource(fyne.NewStaticResource("gift.svg", giftIconData))
	c.celebrateBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCelebrate), gift, func() {
		app.Session.Celebrate()
		app.sync()
	})
	c.celebrateBtn.Importance = widget.HighImportance
	c.exportBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnExport), theme.DocumentSaveIcon(), app.showExportDialog)

	candleHeading := widget.NewLabel(app.GetMsg(config.TKeyLblCandles))
	candleHeading.Alignment = fyne.TextAlignCenter
	balloonHeading := widget.NewLabel(app.GetMsg(config.TKeyLblBalloons))
	balloonHeading.Alignment = fyne.TextAlignCenter

	title := canvas.NewText(app.GetMsg(config.TKeyCardTitle), theme.Color(theme.ColorNamePrimary))
	title.TextSize = theme.TextHeadingSize()
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	c.view = widget.NewCard("", "", container.NewVBox(
		title,
		name,
		date,
		widget.NewSeparator(),
		candleHeading,
		container.NewCenter(candleRow),
		balloonHeading,
		container.NewCenter(balloonRow),
		widget.NewSeparator(),
		container.NewGridWithColumns(config.LayoutColumnsDouble, c.exportBtn, c.celebrateBtn),
	))

	c.render(snap)
	return c
}

// render brings every token and the celebrate button in line with snap.
func (c *celebrationCard) render(snap engine.Snapshot) {
	for i, t := range c.candles {
		t.SetActive(snap.CandleShown(i), snap.CandleRevealDelay(i))
	}
	for i, t := range c.balloons {
		t.SetActive(snap.BalloonPopped(i), 0)
	}
	if snap.Celebrating {
		c.celebrateBtn.Disable()
	} else {
		c.celebrateBtn.Enable()
	}
}

func (c *celebrationCard) stop() {
	for _, t := range c.candles {
		t.Stop()
	}
	for _, t := range c.balloons {
		t.Stop()
	}
}

// showExportDialog saves the birthday as a yearly calendar event.
func (app *WishApp) showExportDialog() {
	if app.Window == nil {
		return
	}
	snap := app.Session.Snapshot()
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, app.Window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if err := app.exportCalendar(writer); err != nil {
			dialog.ShowError(err, app.Window)
		}
	}, app.Window)
	d.SetFileName(fmt.Sprintf(config.ICSFileNameFormat, fileStem(snap.Input.Name)))
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtICS}))
	d.Show()
}

// exportCalendar writes the current session's birthday to w.
func (app *WishApp) exportCalendar(w io.Writer) error {
	if err := app.Exporter.Export(w, app.Session.Snapshot()); err != nil {
		slog.Error(config.ErrExportWrite, config.LogKeyComponent, config.CompUI, config.LogKeyError, err)
		return fmt.Errorf("%s: %w", config.ErrExportWrite, err)
	}
	return nil
}

// fileStem turns a name into something safe for a file name.
func fileStem(name string) string {
	stem := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		}
		return -1
	}, strings.TrimSpace(name))
	if stem == "" {
		return config.CmdName
	}
	return strings.ToLower(stem)
}
