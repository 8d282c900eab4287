package ui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-birthday-wish/internal/config"
	"github.com/tartampluch/go-birthday-wish/internal/engine"
)

// intakeForm holds the widgets of the first screen.
type intakeForm struct {
	nameEntry  *widget.Entry
	dateEntry  *DateEntry
	langSelect *widget.Select
	startBtn   *widget.Button
	importBtn  *widget.Button
	view       fyne.CanvasObject
}

// buildIntakeForm creates the name/birthday form. Submitting with an empty
// field does nothing; the session decides.
func (app *WishApp) buildIntakeForm() *intakeForm {
	f := &intakeForm{}

	// --- 1. Fields ---
	f.nameEntry = widget.NewEntry()
	f.nameEntry.OnSubmitted = func(string) { app.submitForm() }

	f.dateEntry = NewDateEntry()
	f.dateEntry.OnSubmitted = func(string) { app.submitForm() }

	// --- 2. Language ---
	f.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	f.langSelect.SetSelected(app.currentLanguage())
	f.langSelect.OnChanged = app.changeLanguage

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblName), f.nameEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblBirthday), f.dateEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), f.langSelect),
	)

	// --- 3. Actions ---
	f.startBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnStart), theme.ConfirmIcon(), app.submitForm)
	f.startBtn.Importance = widget.HighImportance
	f.importBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImport), theme.AccountIcon(), app.showImportDialog)

	f.view = widget.NewCard(app.GetMsg(config.TKeyFormTitle), "", container.NewVBox(
		form,
		container.NewGridWithColumns(config.LayoutColumnsDouble, f.importBtn, f.startBtn),
	))
	return f
}

// submitForm hands the current field values to the session.
func (app *WishApp) submitForm() {
	if app.form == nil {
		return
	}
	app.Session.Submit(app.form.nameEntry.Text, app.form.dateEntry.Text)
	app.sync()
}

func (app *WishApp) currentLanguage() string {
	if app.Settings.Language != "" {
		return app.Settings.Language
	}
	return app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
}

// changeLanguage stores the choice and rebuilds the form, keeping whatever
// was already typed.
func (app *WishApp) changeLanguage(lang string) {
	if lang == app.currentLanguage() {
		return
	}
	slog.Info(config.MsgLangChanged, config.LogKeyComponent, config.CompUI, config.LogKeyLang, lang)

	app.Preferences.SetString(config.PrefLanguage, lang)
	app.Settings.Language = ""
	app.UpdateLocalizer()

	name, date := app.form.nameEntry.Text, app.form.dateEntry.Text
	app.showForm()
	app.form.nameEntry.SetText(name)
	app.form.dateEntry.SetText(date)
	if app.Window != nil {
		app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
	}
}

// showImportDialog lets the user pick a vCard to pre-fill the form.
func (app *WishApp) showImportDialog() {
	if app.Window == nil {
		return
	}
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, app.Window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		if err := app.importContact(reader); err != nil {
			dialog.ShowInformation(app.GetMsg(config.TKeyDlgImportTitle), err.Error(), app.Window)
		}
	}, app.Window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
	d.Show()
}

// importContact reads a vCard stream and copies the first usable contact
// into the form fields. The form still has to be submitted.
func (app *WishApp) importContact(r io.Reader) error {
	contact, err := engine.ImportContact(r)
	if err != nil {
		slog.Warn(config.ErrImportRead, config.LogKeyComponent, config.CompUI, config.LogKeyError, err)
		return fmt.Errorf("%s: %w", config.ErrImportRead, err)
	}
	if app.form == nil {
		return nil
	}
	app.form.nameEntry.SetText(strings.TrimSpace(contact.Name))
	app.form.dateEntry.SetText(contact.BirthdayText())
	return nil
}
