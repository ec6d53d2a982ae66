package fault

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	Status
	name string
}

func TestStatus(t *testing.T) {
	var s Status
	assert.False(t, s.Invalid())
	assert.Equal(t, "ok", s.String())

	cause := errors.New("no attribute")
	s.Fail(CodeUnboundParameter, cause)
	assert.True(t, s.Invalid())
	assert.Equal(t, "unbound parameter: no attribute", s.String())

	s.Fail(CodeHost, errors.New("later"))
	assert.Equal(t, CodeUnboundParameter, s.Code)
	assert.ErrorIs(t, s.Err, cause)

	s.Reset()
	assert.False(t, s.Invalid())
}

func TestStatus_ErrOnlyIsInvalid(t *testing.T) {
	s := Status{Err: errors.New("boom")}
	assert.True(t, s.Invalid())
}

func TestClearInvalid(t *testing.T) {
	a := &item{name: "a"}
	b := &item{name: "b"}
	c := &item{name: "c"}
	d := &item{name: "d"}
	b.Fail(CodeGeometry, nil)
	d.Fail(CodeHost, errors.New("x"))

	got := ClearInvalid([]*item{a, b, c, d})

	names := make([]string, 0, len(got))
	for _, it := range got {
		names = append(names, it.name)
	}
	assert.Equal(t, []string{"a", "c"}, names)
}

func TestClearInvalid_AllAndNone(t *testing.T) {
	a := &item{}
	a.Fail(CodeDeclaration, nil)
	assert.Empty(t, ClearInvalid([]*item{a}))
	assert.Empty(t, ClearInvalid([]*item(nil)))

	ok := []*item{{name: "x"}, {name: "y"}}
	assert.Len(t, ClearInvalid(ok), 2)
}

func TestCodeString(t *testing.T) {
	assert.Equal(t, "declaration", CodeDeclaration.String())
	assert.Equal(t, "code(7)", Code(7).String())
}
