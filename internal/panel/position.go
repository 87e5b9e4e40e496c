package panel

import "github.com/ajramos/labelpanel/internal/store"

// Edge padding for the floating panel, in pixels.
const (
	snapPaddingX  = 12
	snapPaddingY  = 16
	snapTopMargin = 20
)

// Rect describes the panel's current geometry: Left is the offset from the
// viewport's left edge, Bottom the offset from its bottom edge.
type Rect struct {
	Left   int
	Bottom int
	Width  int
	Height int
}

// SnapToEdge computes where a dragged panel settles: horizontally it snaps
// to whichever edge its center is nearer, vertically it stays put but is
// clamped inside the viewport. The result is the position persisted as the
// panel-position override.
func SnapToEdge(r Rect, viewportW, viewportH int) store.Position {
	centerX := r.Left + r.Width/2

	left := snapPaddingX
	if centerX >= viewportW/2 {
		left = viewportW - r.Width - snapPaddingX
	}

	maxBottom := viewportH - r.Height - snapTopMargin
	bottom := r.Bottom
	if bottom > maxBottom {
		bottom = maxBottom
	}
	if bottom < snapPaddingY {
		bottom = snapPaddingY
	}

	return store.Position{X: left, Y: bottom}
}
