package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tmayer/go-stl-raytracer/pkg/core"
)

func TestMitchellFilter_ZeroOutsideSupport(t *testing.T) {
	f := NewMitchellFilter(2.0, 2.0, 1.0/3.0, 1.0/3.0)

	tests := []struct {
		name string
		p    core.Vec2
	}{
		{"outside right edge", core.NewVec2(2.001, 0)},
		{"outside left edge", core.NewVec2(-2.001, 0)},
		{"outside top edge", core.NewVec2(0, -2.5)},
		{"outside bottom edge", core.NewVec2(0, 2.5)},
		{"outside corner", core.NewVec2(3, 3)},
		{"far away", core.NewVec2(100, -100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Zero(t, f.EvalAt(tt.p))
		})
	}
}

func TestMitchellFilter_PeakAtCenter(t *testing.T) {
	f := NewMitchellFilter(2.0, 2.0, 1.0/3.0, 1.0/3.0)

	center := f.EvalAt(core.NewVec2(0, 0))
	assert.Greater(t, center, 0.0)

	// The kernel decreases away from the center within the inner lobe
	// and is symmetric in both axes.
	for _, d := range []float64{0.25, 0.5, 0.75} {
		w := f.EvalAt(core.NewVec2(d, 0))
		assert.Less(t, w, center)
		assert.InDelta(t, w, f.EvalAt(core.NewVec2(-d, 0)), 1e-12)
		assert.InDelta(t, w, f.EvalAt(core.NewVec2(0, d)), 1e-12)
	}
}

func TestMitchellFilter_NegativeLobes(t *testing.T) {
	f := NewMitchellFilter(2.0, 2.0, 1.0/3.0, 1.0/3.0)

	// Mitchell-Netravali has negative lobes in the outer half of its
	// support; that is what gives it its sharpening behavior.
	assert.Negative(t, f.EvalAt(core.NewVec2(1.3, 0)))
}

func TestMitchellFilter_AsymmetricRadii(t *testing.T) {
	f := NewMitchellFilter(1.0, 3.0, 1.0/3.0, 1.0/3.0)

	assert.Zero(t, f.EvalAt(core.NewVec2(1.5, 0)))
	assert.NotZero(t, f.EvalAt(core.NewVec2(0, 1.5)))
	assert.Equal(t, 1.0, f.HalfWidth())
	assert.Equal(t, 3.0, f.HalfHeight())
}
