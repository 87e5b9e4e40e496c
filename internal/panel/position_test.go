package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajramos/labelpanel/internal/store"
)

func TestSnapToEdge(t *testing.T) {
	tests := []struct {
		name      string
		rect      Rect
		viewportW int
		viewportH int
		expected  store.Position
	}{
		{
			"left_half_snaps_left",
			Rect{Left: 100, Bottom: 200, Width: 300, Height: 400},
			1920, 1080,
			store.Position{X: 12, Y: 200},
		},
		{
			"right_half_snaps_right",
			Rect{Left: 1500, Bottom: 200, Width: 300, Height: 400},
			1920, 1080,
			store.Position{X: 1920 - 300 - 12, Y: 200},
		},
		{
			"center_exact_snaps_right",
			Rect{Left: 810, Bottom: 100, Width: 300, Height: 400},
			1920, 1080,
			store.Position{X: 1920 - 300 - 12, Y: 100},
		},
		{
			"dragged_above_top_clamps",
			Rect{Left: 0, Bottom: 2000, Width: 300, Height: 400},
			1920, 1080,
			store.Position{X: 12, Y: 1080 - 400 - 20},
		},
		{
			"dragged_below_bottom_clamps",
			Rect{Left: 0, Bottom: -50, Width: 300, Height: 400},
			1920, 1080,
			store.Position{X: 12, Y: 16},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SnapToEdge(tt.rect, tt.viewportW, tt.viewportH))
		})
	}
}
