package ui

import (
	"context"
	_ "embed"
	"image/color"
	"log/slog"
	"math/rand/v2"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-birthday-wish/internal/config"
	"github.com/tartampluch/go-birthday-wish/internal/engine"
)

//go:embed assets/icon.svg
var appIconData []byte

//go:embed assets/gift.svg
var giftIconData []byte

// WishApp owns the window, the session and every view built on top of it.
type WishApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Session  *engine.Session
	Settings config.Settings
	Exporter *engine.CalendarExporter
	Rand     *rand.Rand // Confetti randomness; nil seeds randomly

	SupportedLanguages []string

	form     *intakeForm
	card     *celebrationCard
	confetti *ConfettiOverlay
	viewport *viewportLayout
	stage    *fyne.Container
	entrance *entrance

	teardown sync.Once
}

// NewWishApp constructs the application and wires dependencies.
// A nil TickerFunc selects the real timer.
func NewWishApp(a fyne.App, ctx context.Context, settings config.Settings, newTicker engine.TickerFunc) *WishApp {
	a.SetIcon(fyne.NewStaticResource("icon.svg", appIconData))

	app := &WishApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Session:            engine.NewSession(settings, newTicker),
		Settings:           settings,
		SupportedLanguages: config.SupportedLanguages,
	}
	app.Exporter = &engine.CalendarExporter{
		Clock:         engine.RealClock{},
		FormatSummary: app.eventSummary,
	}
	return app
}

// Run builds the window and blocks in the UI loop until it closes.
func (app *WishApp) Run() {
	app.SetupI18n()
	w := app.BuildWindow()
	w.Show()
	app.App.Run()
}

// BuildWindow creates the main window showing the intake form.
func (app *WishApp) BuildWindow() fyne.Window {
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w

	app.Session.Subscribe(app.onSessionEvent)

	app.stage = container.NewStack()
	app.entrance = newEntrance(app.stage)
	app.confetti = NewConfettiOverlay()
	app.viewport = newViewportLayout(app.onViewportResize)

	bg := canvas.NewRectangle(theme.Color(theme.ColorNameBackground))
	root := container.New(app.viewport,
		bg,
		container.NewPadded(app.entrance.container),
		app.confetti.Container,
	)

	app.showForm()

	w.SetContent(root)
	w.Resize(fyne.NewSize(config.WindowWidth, config.WindowHeight))
	w.SetOnClosed(app.Teardown)
	return w
}

// Teardown releases the celebrate timer, the resize hook and any running
// animation. It is safe to call more than once.
func (app *WishApp) Teardown() {
	app.teardown.Do(func() {
		if app.viewport != nil {
			app.viewport.Detach()
		}
		app.Session.Close()
		if app.confetti != nil {
			app.confetti.Stop()
		}
		if app.card != nil {
			app.card.stop()
		}
		if app.entrance != nil {
			app.entrance.stop()
		}
		slog.Debug(config.MsgSessionClosed, config.LogKeyComponent, config.CompUI)
	})
}

// showForm (re)builds the intake form in the active language.
func (app *WishApp) showForm() {
	app.form = app.buildIntakeForm()
	app.entrance.play(app.form.view)
}

func (app *WishApp) onViewportResize(size fyne.Size) {
	app.Session.Resize(size.Width, size.Height)
	if app.confetti != nil {
		app.confetti.Resize(size)
	}
}

// onSessionEvent may run on the timer goroutine; all widget work is
// marshalled onto the UI goroutine.
func (app *WishApp) onSessionEvent(engine.Event, engine.Snapshot) {
	fyne.Do(app.sync)
}

// sync brings every view in line with the session. It reads a fresh snapshot,
// so a late or repeated call never rolls the card back. UI handlers call it
// directly after acting on the session.
func (app *WishApp) sync() {
	snap := app.Session.Snapshot()

	if snap.Submitted() && app.card == nil {
		app.card = app.buildCelebrationCard(snap)
		app.entrance.play(app.card.view)
	}
	if app.card != nil {
		app.card.render(snap)
	}
	if snap.ConfettiShown && !app.confetti.Started() {
		app.confetti.Start(app.Session.ConfettiSpec(), app.Rand)
	}
}

// entrance scales and fades a view in, the way the card appears on submit.
type entrance struct {
	container *fyne.Container
	layout    *entranceLayout
	veil      *canvas.Rectangle
	anim      *fyne.Animation
	stage     *fyne.Container
}

func newEntrance(stage *fyne.Container) *entrance {
	bg := theme.Color(theme.ColorNameBackground)
	veil := canvas.NewRectangle(color.Transparent)
	l := &entranceLayout{scale: 1}
	e := &entrance{
		layout: l,
		veil:   veil,
		stage:  stage,
	}
	e.container = container.New(l, stage, veil)

	e.anim = fyne.NewAnimation(config.CardEntranceDuration, func(f float32) {
		l.scale = config.CardEntranceScale + (1-config.CardEntranceScale)*f
		veil.FillColor = fadeColor(bg, 1-f)
		e.container.Refresh()
	})
	e.anim.Curve = fyne.AnimationEaseOut
	return e
}

// play swaps the stage content and runs the entrance animation.
func (e *entrance) play(view fyne.CanvasObject) {
	e.anim.Stop()
	e.stage.Objects = []fyne.CanvasObject{container.NewCenter(view)}
	e.stage.Refresh()
	e.anim.Start()
}

func (e *entrance) stop() {
	e.anim.Stop()
}

// entranceLayout draws its first child scaled about the center and
// stretches the rest (the veil) over the whole area.
type entranceLayout struct {
	scale float32
}

func (l *entranceLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for i, o := range objects {
		if i > 0 {
			o.Move(fyne.NewPos(0, 0))
			o.Resize(size)
			continue
		}
		scaled := fyne.NewSize(size.Width*l.scale, size.Height*l.scale)
		o.Resize(scaled)
		o.Move(fyne.NewPos((size.Width-scaled.Width)/2, (size.Height-scaled.Height)/2))
	}
}

func (l *entranceLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) == 0 {
		return fyne.NewSize(0, 0)
	}
	return objects[0].MinSize()
}

// fadeColor returns c with its alpha scaled by opacity.
func fadeColor(c color.Color, opacity float32) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float32(n.A) * opacity)
	return n
}
