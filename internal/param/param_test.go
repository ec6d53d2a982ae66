package param

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formwork/internal/host"
	"formwork/internal/host/memhost"
	"formwork/internal/units"
)

type ownerFunc func() host.Element

func (f ownerFunc) Element() host.Element { return f() }

func newElement(t *testing.T, attrs ...memhost.AttrSpec) *memhost.Element {
	t.Helper()
	el, err := memhost.New().AddElement(host.CategoryGenericModel, attrs...)
	require.NoError(t, err)
	return el
}

func TestNewHoldsDefault(t *testing.T) {
	p := New(Real("width", 600), nil)
	assert.Equal(t, "width", p.Name())
	assert.Equal(t, KindReal, p.Kind())
	assert.Equal(t, 600.0, p.Real())
	assert.False(t, p.Bound())

	id := New(Descriptor{Name: "host", Kind: KindID}, nil)
	assert.Equal(t, host.InvalidElementID, id.ElementID())
}

func TestPullConvertsByPhysicalKind(t *testing.T) {
	tests := []struct {
		name string
		attr memhost.AttrSpec
		want float64
	}{
		{"length", memhost.Length("v", 1), 304.8},
		{"length rounds to 3 decimals", memhost.Length("v", 1.0/3), 101.6},
		{"angle", memhost.Angle("v", math.Pi/2), 90},
		{"angle wraps", memhost.Angle("v", 2*math.Pi+math.Pi/2), 90},
		{"area", memhost.AttrSpec{Name: "v", Physical: host.PhysicalArea, Storage: host.StorageFloat, Value: 1.0}, 92903.04},
		{"volume", memhost.AttrSpec{Name: "v", Physical: host.PhysicalVolume, Storage: host.StorageFloat, Value: 1.0}, 28316846.592},
		{"no physical kind", memhost.Number("v", 1.25), 1.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := newElement(t, tt.attr)
			p := New(Real("v", 0), nil)
			require.NoError(t, p.Bind(el))
			require.NoError(t, p.Pull())
			assert.InDelta(t, tt.want, p.Real(), 1e-6)
		})
	}
}

func TestRawRealIsNotConverted(t *testing.T) {
	el := newElement(t, memhost.Length("v", 2))
	p := New(RawReal("v", 0), nil)
	require.NoError(t, p.Bind(el))
	require.NoError(t, p.Pull())
	assert.Equal(t, 2.0, p.Real())
}

func TestWriteConvertsBack(t *testing.T) {
	el := newElement(t, memhost.Length("len", 0), memhost.Angle("rot", 0))

	l := New(Real("len", 0), nil)
	require.NoError(t, l.Bind(el))
	require.NoError(t, l.SetReal(304.8))
	require.NoError(t, l.Write())

	r := New(Real("rot", 0), nil)
	require.NoError(t, r.Bind(el))
	require.NoError(t, r.SetReal(180))
	require.NoError(t, r.Write())

	la, _ := el.Lookup("len")
	ra, _ := el.Lookup("rot")
	assert.InDelta(t, 1.0, la.Float(), 1e-12)
	assert.InDelta(t, math.Pi, ra.Float(), 1e-12)
}

func TestWriteThenPullRoundTrips(t *testing.T) {
	el := newElement(t, memhost.Length("len", 0))
	p := New(Real("len", 0), nil)
	require.NoError(t, p.Bind(el))

	for _, mm := range []float64{0, 1, 600, 1234.567, -50} {
		require.NoError(t, p.SetReal(mm))
		require.NoError(t, p.Write())
		require.NoError(t, p.Pull())
		assert.InDelta(t, mm, p.Real(), 1e-9)
	}
}

func TestTypedKinds(t *testing.T) {
	el := newElement(t, memhost.Integer("n", 4), memhost.Text("s", "a"), memhost.Ref("r", 9))

	n := New(Int("n", 0), nil)
	s := New(String("s", ""), nil)
	r := New(ID("r", host.InvalidElementID), nil)
	for _, p := range []*Param{n, s, r} {
		require.NoError(t, p.Bind(el))
		require.NoError(t, p.Pull())
	}
	assert.Equal(t, 4, n.Int())
	assert.Equal(t, "a", s.Str())
	assert.Equal(t, host.ElementID(9), r.ElementID())

	require.NoError(t, n.SetInt(5))
	require.NoError(t, s.SetStr("b"))
	require.NoError(t, r.SetElementID(10))
	for _, p := range []*Param{n, s, r} {
		require.NoError(t, p.Write())
	}
	na, _ := el.Lookup("n")
	sa, _ := el.Lookup("s")
	ra, _ := el.Lookup("r")
	assert.Equal(t, 5, na.Int())
	assert.Equal(t, "b", sa.Str())
	assert.Equal(t, host.ElementID(10), ra.ElementID())
}

func TestBindMissingAttribute(t *testing.T) {
	el := newElement(t)
	p := New(Real("width", 600), nil)

	err := p.Bind(el)
	var unbound *UnboundError
	require.ErrorAs(t, err, &unbound)
	assert.Equal(t, "width", unbound.Name)
	assert.ErrorIs(t, err, ErrUnbound)
	assert.Equal(t, 600.0, p.Real())

	assert.ErrorIs(t, p.Pull(), ErrUnbound)
	assert.ErrorIs(t, p.Bind(nil), ErrUnbound)
}

func TestBindTwiceIsNoop(t *testing.T) {
	el := newElement(t, memhost.Length("w", 1))
	p := New(Real("w", 0), nil)
	require.NoError(t, p.Bind(el))
	a := p.Attribute()
	require.NoError(t, p.Bind(el))
	assert.Same(t, a.(*memhost.Attribute), p.Attribute().(*memhost.Attribute))
}

func TestWriteReadOnlyIsSilent(t *testing.T) {
	el := newElement(t, memhost.AttrSpec{Name: "area", Physical: host.PhysicalArea, Storage: host.StorageFloat, ReadOnly: true, Value: 2.0})
	p := New(Real("area", 0), nil)
	require.NoError(t, p.Bind(el))
	require.NoError(t, p.SetReal(1))
	require.NoError(t, p.Write())

	a, _ := el.Lookup("area")
	assert.Equal(t, 2.0, a.Float())
}

func TestWriteBindsLazilyThroughOwner(t *testing.T) {
	el := newElement(t, memhost.Length("w", 0))
	p := New(Real("w", 0), ownerFunc(func() host.Element { return el }))
	require.NoError(t, p.SetReal(units.MMPerFoot*2))
	require.NoError(t, p.Write())

	assert.True(t, p.Bound())
	a, _ := el.Lookup("w")
	assert.InDelta(t, 2.0, a.Float(), 1e-12)
}

func TestWriteWithoutOwnerFails(t *testing.T) {
	p := New(Real("w", 0), nil)
	assert.ErrorIs(t, p.Write(), ErrUnbound)

	detached := New(Real("w", 0), ownerFunc(func() host.Element { return nil }))
	assert.ErrorIs(t, detached.Write(), ErrUnbound)
}

func TestKindMismatch(t *testing.T) {
	p := New(Int("n", 1), nil)
	assert.ErrorIs(t, p.SetStr("x"), ErrKindMismatch)
	assert.ErrorIs(t, p.SetReal(1), ErrKindMismatch)
	assert.Equal(t, 1, p.Int())
}

func TestStorageMismatch(t *testing.T) {
	el := newElement(t, memhost.Text("w", "wide"))
	p := New(Real("w", 0), nil)
	require.NoError(t, p.Bind(el))
	assert.ErrorIs(t, p.Pull(), host.ErrStorage)
	assert.ErrorIs(t, p.Write(), host.ErrStorage)
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "3", IntValue(3).String())
	assert.Equal(t, "-1", IDValue(host.InvalidElementID).String())
	assert.Equal(t, "x", StringValue("x").String())
	assert.Equal(t, "2.5", RealValue(2.5).String())
	assert.Equal(t, 2.5, RealValue(2.5).Any())
	assert.True(t, KindReal.Valid())
	assert.False(t, Kind(9).Valid())
}
