package ui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-birthday-wish/internal/config"
)

// TokenKind selects how an ItemToken is drawn.
type TokenKind int

const (
	TokenCandle TokenKind = iota
	TokenBalloon
)

// ItemToken is one clickable candle or balloon.
// Active means lit for a candle and popped for a balloon.
type ItemToken struct {
	widget.BaseWidget

	Kind     TokenKind
	Index    int
	Color    color.Color
	OnTapped func(index int)

	active   bool
	progress float32 // 0 = inactive look, 1 = fully activated look
	anim     *fyne.Animation
	delay    *time.Timer
}

// NewItemToken creates an inactive token.
func NewItemToken(kind TokenKind, index int, col color.Color, onTapped func(int)) *ItemToken {
	t := &ItemToken{Kind: kind, Index: index, Color: col, OnTapped: onTapped}
	t.ExtendBaseWidget(t)
	return t
}

// Tapped forwards the click with the token's index.
func (t *ItemToken) Tapped(*fyne.PointEvent) {
	if t.OnTapped != nil {
		t.OnTapped(t.Index)
	}
}

// Active reports the last state set with SetActive.
func (t *ItemToken) Active() bool {
	return t.active
}

// SetActive switches the token's look, animating the change after delay.
func (t *ItemToken) SetActive(active bool, delay time.Duration) {
	if t.active == active {
		return
	}
	t.active = active
	t.Stop()

	from := t.progress
	to := float32(0)
	if active {
		to = 1
	}
	t.anim = fyne.NewAnimation(t.revealDuration(), func(f float32) {
		t.progress = from + (to-from)*f
		t.Refresh()
	})
	t.anim.Curve = fyne.AnimationEaseOut

	if delay <= 0 {
		t.anim.Start()
		return
	}
	anim := t.anim
	t.delay = time.AfterFunc(delay, func() {
		fyne.Do(anim.Start)
	})
}

// Stop cancels any pending or running animation.
func (t *ItemToken) Stop() {
	if t.delay != nil {
		t.delay.Stop()
		t.delay = nil
	}
	if t.anim != nil {
		t.anim.Stop()
		t.anim = nil
	}
}

func (t *ItemToken) revealDuration() time.Duration {
	if t.Kind == TokenBalloon {
		return config.BalloonPopDuration
	}
	return config.CandleRevealDuration
}

// CreateRenderer implements fyne.Widget.
func (t *ItemToken) CreateRenderer() fyne.WidgetRenderer {
	r := &itemTokenRenderer{
		token: t,
		body:  canvas.NewRectangle(color.Transparent),
		flame: canvas.NewCircle(color.Transparent),
		str:   canvas.NewLine(color.Transparent),
	}
	r.Refresh()
	return r
}

type itemTokenRenderer struct {
	token *ItemToken
	body  *canvas.Rectangle
	flame *canvas.Circle
	str   *canvas.Line
}

func (r *itemTokenRenderer) MinSize() fyne.Size {
	return fyne.NewSquareSize(config.ItemTokenSize)
}

func (r *itemTokenRenderer) Layout(size fyne.Size) {
	if r.token.Kind == TokenBalloon {
		r.layoutBalloon(size)
		return
	}
	r.layoutCandle(size)
}

// layoutCandle draws a cake slab with a flame that grows in as it lights.
func (r *itemTokenRenderer) layoutCandle(size fyne.Size) {
	bodyH := size.Height * 0.6
	r.body.Resize(fyne.NewSize(size.Width*0.8, bodyH))
	r.body.Move(fyne.NewPos(size.Width*0.1, size.Height-bodyH))

	flame := config.FlameSize * r.token.progress
	r.flame.Resize(fyne.NewSquareSize(flame))
	r.flame.Move(fyne.NewPos((size.Width-flame)/2, size.Height-bodyH-flame-2))
	r.str.Hide()
}

// layoutBalloon draws a balloon that shrinks to nothing as it pops.
func (r *itemTokenRenderer) layoutBalloon(size fyne.Size) {
	scale := 1 - r.token.progress
	diameter := (size.Height - config.BalloonString) * scale
	r.flame.Resize(fyne.NewSquareSize(diameter))
	r.flame.Move(fyne.NewPos((size.Width-diameter)/2, (size.Height-config.BalloonString-diameter)/2))

	r.str.Position1 = fyne.NewPos(size.Width/2, size.Height-config.BalloonString)
	r.str.Position2 = fyne.NewPos(size.Width/2, size.Height)
	r.str.StrokeWidth = 1
	if scale > 0 {
		r.str.Show()
	} else {
		r.str.Hide()
	}
	r.body.Hide()
}

func (r *itemTokenRenderer) Refresh() {
	t := r.token
	inactive := parseHexColor(config.ColorInactive)

	if t.Kind == TokenBalloon {
		fill := t.Color
		if t.active {
			fill = inactive
		}
		r.flame.FillColor = fill
		r.str.StrokeColor = inactive
	} else {
		var fill color.Color = inactive
		if t.active {
			fill = t.Color
		}
		r.body.FillColor = fill
		r.body.CornerRadius = 3
		r.flame.FillColor = parseHexColor(config.ColorFlame)
	}

	r.Layout(t.Size())
	canvas.Refresh(r.body)
	canvas.Refresh(r.flame)
	canvas.Refresh(r.str)
}

func (r *itemTokenRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.body, r.str, r.flame}
}

func (r *itemTokenRenderer) Destroy() {
	r.token.Stop()
}
