package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formwork/internal/units"
)

func mm(x, y, z float64) XYZ {
	return V(units.ToHostLength(x), units.ToHostLength(y), units.ToHostLength(z))
}

func sampleRect() Rect {
	return NewRectFromPoints(mm(100, 200, 0), mm(700, 200, 0), mm(300, 600, 0))
}

func TestNewRectFromPoints(t *testing.T) {
	r := sampleRect()

	assert.InDelta(t, 600, r.LenX, eps)
	assert.InDelta(t, 400, r.LenY, eps)
	assert.True(t, r.DirX.Approx(BasisX, eps))
	assert.True(t, r.DirY.Approx(BasisY, eps))
	assert.True(t, r.DirZ.Approx(BasisZ, eps))

	c := r.Corners()
	assert.True(t, c[0].Approx(mm(100, 200, 0), eps))
	assert.True(t, c[1].Approx(mm(700, 200, 0), eps))
	assert.True(t, c[2].Approx(mm(700, 600, 0), eps))
	assert.True(t, c[3].Approx(mm(100, 600, 0), eps))
}

func TestNewRectFromCorners(t *testing.T) {
	_, ok := NewRectFromCorners([]XYZ{Zero, BasisX})
	assert.False(t, ok)

	r, ok := NewRectFromCorners([]XYZ{Zero, BasisX, V(1, 1, 0), BasisY})
	require.True(t, ok)
	// 304.8 mm rounds to whole millimetres
	assert.Equal(t, 305.0, r.LenX)
}

func TestRect_ReverseInvolution(t *testing.T) {
	r := sampleRect()
	orig := r

	r.Reverse()
	assert.True(t, r.DirX.Approx(orig.DirY, eps))
	assert.True(t, r.DirZ.Approx(orig.DirZ.Neg(), eps))
	assert.Equal(t, orig.LenY, r.LenX)
	assert.Equal(t, orig.Origin, r.Origin)

	r.Reverse()
	assert.True(t, r.Approx(orig, eps))
}

func TestRect_AdvanceOnce(t *testing.T) {
	r := sampleRect()
	orig := r

	r.Advance(1)
	assert.True(t, r.Origin.Approx(orig.Pt1(), eps))
	assert.True(t, r.DirX.Approx(orig.DirY, eps))
	assert.True(t, r.DirY.Approx(orig.DirX.Neg(), eps))
	assert.Equal(t, orig.LenY, r.LenX)
	assert.Equal(t, orig.LenX, r.LenY)

	// the footprint itself is unchanged
	assert.True(t, r.Pt1().Approx(orig.Pt2(), eps))
	assert.True(t, r.Pt2().Approx(orig.Pt3(), eps))
	assert.True(t, r.Pt3().Approx(orig.Pt0(), eps))
}

func TestRect_AdvanceClosure(t *testing.T) {
	for k := -9; k <= 9; k++ {
		r := sampleRect()
		orig := r
		r.Advance(k)
		m := ((k % 4) + 4) % 4
		r.Advance(4 - m)
		assert.True(t, r.Approx(orig, 1e-9), "k=%d", k)
	}

	r := sampleRect()
	orig := r
	r.Advance(4)
	assert.True(t, r.Approx(orig, 1e-9))
}

func TestRect_AdvanceExtremeTurns(t *testing.T) {
	tests := []struct {
		name string
		k    int
		same int
	}{
		{"min int", math.MinInt, 0},
		{"large negative", -9e18 - 1, 3},
		{"max int", math.MaxInt, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, want := sampleRect(), sampleRect()
			r.Advance(tt.k)
			want.Advance(tt.same)
			assert.True(t, r.Approx(want, 1e-9))
		})
	}
}

func TestRect_ExpandSelfInverse(t *testing.T) {
	tests := []struct {
		name       string
		lenX, lenY float64
	}{
		{"positive", 600, 400},
		{"negative x", -600, 400},
		{"negative y", 600, -400},
		{"both negative", -600, -400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRect(tt.lenX, tt.lenY)
			r.Origin = mm(50, 50, 0)
			orig := r

			r.Expand(25)
			assert.InDelta(t, math.Abs(tt.lenX)+50, math.Abs(r.LenX), eps)
			assert.InDelta(t, math.Abs(tt.lenY)+50, math.Abs(r.LenY), eps)

			r.Expand(-25)
			assert.True(t, r.Approx(orig, 1e-9))
		})
	}
}

func TestRect_ExpandGrowsOutward(t *testing.T) {
	r := NewRect(100, -100)
	r.Expand(10)

	c := r.Corners()
	assert.True(t, c[0].Approx(mm(-10, 10, 0), eps))
	assert.True(t, c[2].Approx(mm(110, -110, 0), eps))
}

func TestRect_TransformBy(t *testing.T) {
	r := sampleRect()
	r.TransformBy(RotationZ(math.Pi/2, Zero))

	assert.True(t, r.DirX.Approx(BasisY, eps))
	assert.True(t, r.DirY.Approx(BasisX.Neg(), eps))
	assert.True(t, r.DirZ.Approx(BasisZ, eps))
	assert.True(t, r.Origin.Approx(mm(-200, 100, 0), eps))
	assert.Equal(t, 600.0, r.LenX)

	s := NewRect(10, 10)
	s.TransformBy(Scaling(2))
	assert.InDelta(t, 2.0, s.DirX.Length(), eps)
}

func TestTransform_Compose(t *testing.T) {
	move := Translation(V(1, 0, 0))
	turn := RotationZ(math.Pi/2, Zero)

	p := turn.Multiply(move).OfPoint(Zero)
	assert.True(t, p.Approx(V(0, 1, 0), eps))

	m := Reflection(Zero, BasisX)
	assert.True(t, m.OfPoint(V(2, 3, 4)).Approx(V(-2, 3, 4), eps))

	c := RotationZ(math.Pi, V(1, 1, 0))
	assert.True(t, c.OfPoint(V(2, 1, 0)).Approx(V(0, 1, 0), eps))
	assert.True(t, Identity().OfPoint(V(5, 6, 7)).Approx(V(5, 6, 7), eps))
}
