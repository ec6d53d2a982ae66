package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLengthRoundTrip(t *testing.T) {
	for _, mm := range []float64{0, 1, 50, 1215, -300, 12345.678} {
		assert.InDelta(t, mm, ToDisplayLength(ToHostLength(mm)), 1e-9)
	}
	assert.InDelta(t, 304.8, ToDisplayLength(1), 1e-12)
}

func TestAreaVolumeScale(t *testing.T) {
	assert.InDelta(t, 304.8*304.8, ToDisplayArea(1), 1e-9)
	assert.InDelta(t, 304.8*304.8*304.8, ToDisplayVolume(1), 1e-6)
	assert.InDelta(t, 2.5, ToHostArea(ToDisplayArea(2.5)), 1e-12)
	assert.InDelta(t, 2.5, ToHostVolume(ToDisplayVolume(2.5)), 1e-12)
}

func TestAngle(t *testing.T) {
	assert.InDelta(t, 180, ToDisplayAngle(math.Pi), 1e-12)
	assert.InDelta(t, math.Pi/2, ToHostAngle(90), 1e-12)
	assert.InDelta(t, math.Pi, ToRadian(180), 1e-12)
}

func TestLengthToRounded(t *testing.T) {
	tests := []struct {
		name string
		mm   float64
		base int
		want int
	}{
		{"exact", 1200, 1, 1200},
		{"round down", 1200.4, 1, 1200},
		{"round up", 1200.6, 1, 1201},
		{"base 50", 1224, 50, 1200},
		{"base 50 up", 1226, 50, 1250},
		{"negative", -1215, 1, -1215},
		{"zero base means one", 7.2, 0, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LengthToRounded(ToHostLength(tt.mm), tt.base))
		})
	}
}

func TestAngleToRounded(t *testing.T) {
	assert.Equal(t, 90, AngleToRounded(math.Pi/2, 1))
	assert.Equal(t, 0, AngleToRounded(2*math.Pi, 1))
	assert.Equal(t, 90, AngleToRounded(ToRadian(90.4), 1))
	assert.Equal(t, 45, AngleToRounded(ToRadian(44), 15))
}

func TestNaNPropagates(t *testing.T) {
	assert.True(t, math.IsNaN(ToDisplayLength(math.NaN())))
	assert.True(t, math.IsInf(ToHostLength(math.Inf(1)), 1))
}
