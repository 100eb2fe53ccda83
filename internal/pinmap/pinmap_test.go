package pinmap

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/planpin/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	phone = domain.ImageSize{Width: 390, Height: 844}
	plan  = domain.ImageSize{Width: 4000, Height: 3000}
)

func TestMap_Plain(t *testing.T) {
	pos, err := Map(Touch{LocationX: 195, LocationY: 211, Viewport: phone}, plan, false)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, pos.X, 1e-9)
	assert.InDelta(t, 25.0, pos.Y, 1e-9)
}

func TestMap_Corners(t *testing.T) {
	pos, err := Map(Touch{LocationX: 0, LocationY: 0, Viewport: phone}, plan, false)
	require.NoError(t, err)
	assert.Equal(t, domain.Position{X: 0, Y: 0}, pos)

	pos, err = Map(Touch{LocationX: phone.Width, LocationY: phone.Height, Viewport: phone}, plan, false)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, pos.X, 1e-9)
	assert.InDelta(t, 100.0, pos.Y, 1e-9)
}

func TestMap_ImageNotLoaded(t *testing.T) {
	touch := Touch{LocationX: 10, LocationY: 10, Viewport: phone}

	_, err := Map(touch, domain.ImageSize{}, false)
	assert.ErrorIs(t, err, ErrImageNotLoaded)

	_, err = Map(touch, domain.ImageSize{Width: 100}, true)
	assert.ErrorIs(t, err, ErrImageNotLoaded)

	_, err = Map(touch, domain.ImageSize{Height: 100}, false)
	assert.ErrorIs(t, err, ErrImageNotLoaded)
}

func TestMap_EmptyViewport(t *testing.T) {
	_, err := Map(Touch{LocationX: 1, LocationY: 1}, plan, false)
	assert.ErrorIs(t, err, ErrEmptyViewport)

	_, err = Map(Touch{LocationX: 1, LocationY: 1, Viewport: domain.ImageSize{Width: 10}}, plan, true)
	assert.ErrorIs(t, err, ErrEmptyViewport)
}

func TestMap_OutsideViewportIsClamped(t *testing.T) {
	pos, err := Map(Touch{LocationX: -20, LocationY: 2000, Viewport: phone}, plan, false)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pos.X)
	assert.Equal(t, 100.0, pos.Y)
	assert.True(t, pos.Valid())
}

// TestMap_PlainInRangeAndMonotonic property-tests the plain branch over
// random viewports: x stays in [0,100] and never decreases as locationX grows.
func TestMap_PlainInRangeAndMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		vp := domain.ImageSize{
			Width:  float64(rng.Intn(2000) + 1),
			Height: float64(rng.Intn(2000) + 1),
		}
		img := domain.ImageSize{
			Width:  float64(rng.Intn(8000) + 1),
			Height: float64(rng.Intn(8000) + 1),
		}

		prev := -1.0
		steps := 50
		for i := 0; i <= steps; i++ {
			lx := vp.Width * float64(i) / float64(steps)
			pos, err := Map(Touch{LocationX: lx, LocationY: 0, Viewport: vp}, img, false)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, pos.X, 0.0, "trial %d", trial)
			assert.LessOrEqual(t, pos.X, 100.0, "trial %d", trial)
			assert.GreaterOrEqual(t, pos.X, prev, "trial %d: x must not decrease", trial)
			prev = pos.X
		}
	}
}

// TestMap_ZoomMatchesPlain pins the observed behavior: the zoom branch
// yields the same position as the plain branch for any image size.
func TestMap_ZoomMatchesPlain(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 500; trial++ {
		vp := domain.ImageSize{
			Width:  float64(rng.Intn(2000) + 1),
			Height: float64(rng.Intn(2000) + 1),
		}
		img := domain.ImageSize{
			Width:  rng.Float64()*8000 + 1,
			Height: rng.Float64()*8000 + 1,
		}
		touch := Touch{
			LocationX: rng.Float64() * vp.Width,
			LocationY: rng.Float64() * vp.Height,
			Viewport:  vp,
		}

		plain, err := Map(touch, img, false)
		require.NoError(t, err)
		zoomed, err := Map(touch, img, true)
		require.NoError(t, err)

		assert.InDelta(t, plain.X, zoomed.X, 1e-9, "trial %d", trial)
		assert.InDelta(t, plain.Y, zoomed.Y, 1e-9, "trial %d", trial)
	}
}

func TestAnchor(t *testing.T) {
	left, top := Anchor(domain.Position{X: 25, Y: 50}, domain.ImageSize{Width: 200, Height: 80})
	assert.InDelta(t, 50.0, left, 1e-9)
	assert.InDelta(t, 40.0, top, 1e-9)
}

func TestCell_EdgesClampToLastCell(t *testing.T) {
	col, row := Cell(domain.Position{X: 100, Y: 100}, 40, 10)
	assert.Equal(t, 39, col)
	assert.Equal(t, 9, row)

	col, row = Cell(domain.Position{X: 0, Y: 0}, 40, 10)
	assert.Equal(t, 0, col)
	assert.Equal(t, 0, row)

	col, row = Cell(domain.Position{X: 50, Y: 50}, 0, 10)
	assert.Equal(t, 0, col)
	assert.Equal(t, 0, row)
}

func TestCell_RoundTripsTouchAt(t *testing.T) {
	const cols, rows = 37, 11
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			pos, err := Map(TouchAt(c, r, cols, rows), plan, false)
			require.NoError(t, err)
			gc, gr := Cell(pos, cols, rows)
			assert.Equal(t, c, gc, "col for (%d,%d)", c, r)
			assert.Equal(t, r, gr, "row for (%d,%d)", c, r)
		}
	}
}
