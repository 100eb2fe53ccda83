// Package pinmap converts between viewport touch coordinates and the
// normalized percentage coordinates pins are stored in.
package pinmap

import (
	"errors"

	"github.com/alexanderramin/planpin/internal/domain"
)

var (
	// ErrImageNotLoaded is returned while the image's natural size is unknown.
	// Placement must wait until the image header has been read.
	ErrImageNotLoaded = errors.New("image dimensions not loaded")

	// ErrEmptyViewport is returned when the viewport has a zero dimension.
	ErrEmptyViewport = errors.New("viewport has no area")
)

// Touch is a tap inside the viewport, in viewport pixels (or cells).
type Touch struct {
	LocationX float64
	LocationY float64
	Viewport  domain.ImageSize
}

// Map converts a touch into a pin position.
//
// The zoom branch scales by image/viewport and then divides the image size
// back out, which reduces to the plain viewport ratio. It is kept in that
// form so the two branches stay comparable; see TestMap_ZoomMatchesPlain.
func Map(t Touch, image domain.ImageSize, zoom bool) (domain.Position, error) {
	if !image.Loaded() {
		return domain.Position{}, ErrImageNotLoaded
	}
	vw, vh := t.Viewport.Width, t.Viewport.Height
	if vw <= 0 || vh <= 0 {
		return domain.Position{}, ErrEmptyViewport
	}

	var x, y float64
	if zoom {
		scaleX := image.Width / vw
		scaleY := image.Height / vh
		x = (t.LocationX * scaleX / image.Width) * 100
		y = (t.LocationY * scaleY / image.Height) * 100
	} else {
		x = (t.LocationX / vw) * 100
		y = (t.LocationY / vh) * 100
	}

	return domain.Position{X: clampPct(x), Y: clampPct(y)}, nil
}

// Anchor returns where a pin sits inside a rendered box of the given size.
// Percentage anchoring does not depend on zoom.
func Anchor(p domain.Position, box domain.ImageSize) (left, top float64) {
	return p.X / 100 * box.Width, p.Y / 100 * box.Height
}

// Cell snaps Anchor to a cols x rows grid. Positions on the far edge land
// in the last column/row.
func Cell(p domain.Position, cols, rows int) (col, row int) {
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	left, top := Anchor(p, domain.ImageSize{Width: float64(cols), Height: float64(rows)})
	return clampIndex(int(left), cols), clampIndex(int(top), rows)
}

// TouchAt builds the touch for a tap in the middle of a grid cell, so that
// Cell(Map(TouchAt(c, r))) == (c, r).
func TouchAt(col, row, cols, rows int) Touch {
	return Touch{
		LocationX: float64(col) + 0.5,
		LocationY: float64(row) + 0.5,
		Viewport:  domain.ImageSize{Width: float64(cols), Height: float64(rows)},
	}
}

func clampPct(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
