package ui

import (
	"fyne.io/fyne/v2"
)

// viewportLayout stacks its children over the full window and reports every
// size change. Fyne has no window resize event; the root layout is the
// one place guaranteed to see each new size.
type viewportLayout struct {
	onResize func(fyne.Size)
	last     fyne.Size
}

func newViewportLayout(onResize func(fyne.Size)) *viewportLayout {
	return &viewportLayout{onResize: onResize}
}

func (v *viewportLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		o.Move(fyne.NewPos(0, 0))
		o.Resize(size)
	}
	if size == v.last {
		return
	}
	v.last = size
	if v.onResize != nil {
		v.onResize(size)
	}
}

func (v *viewportLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	size := fyne.NewSize(0, 0)
	for _, o := range objects {
		size = size.Max(o.MinSize())
	}
	return size
}

// Detach stops resize reporting; called on teardown.
func (v *viewportLayout) Detach() {
	v.onResize = nil
}
