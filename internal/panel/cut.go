package panel

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"formwork/internal/fault"
	"formwork/internal/grid"
)

// ============================================================
// Systems and range kinds
// ============================================================

// System is a formwork product system.
type System uint8

const (
	SystemGeto65 System = iota
	SystemGeto635
	SystemZW
	SystemHB
)

var systemNames = []string{"GETO65", "GETO635", "ZW", "HB"}

func (s System) String() string {
	if int(s) < len(systemNames) {
		return systemNames[s]
	}
	return fmt.Sprintf("system(%d)", uint8(s))
}

// ParseSystem maps a system name, case-insensitively, to its System.
func ParseSystem(name string) (System, error) {
	for i, n := range systemNames {
		if strings.EqualFold(n, name) {
			return System(i), nil
		}
	}
	return 0, fmt.Errorf("unknown formwork system %q", name)
}

// RangeKind is the panel family a cut range is laid out with.
type RangeKind uint8

const (
	RangeNull RangeKind = iota
	RangeIC
	RangeSC
	RangeSN
	RangeYC
	RangeYCX
	RangeD
	RangeDP
	RangeDPT
	RangeEB
	RangeMB
	RangeK
)

var rangeNames = []string{"", "IC", "SC", "SN", "YC", "YCX", "D", "DP", "DPT", "EB", "MB", "K"}

func (k RangeKind) String() string {
	if int(k) < len(rangeNames) {
		if k == RangeNull {
			return "null"
		}
		return rangeNames[k]
	}
	return fmt.Sprintf("range(%d)", uint8(k))
}

// ParseRangeKind maps a range kind name, case-insensitively, to its kind.
func ParseRangeKind(name string) (RangeKind, error) {
	for i, n := range rangeNames {
		if i > 0 && strings.EqualFold(n, name) {
			return RangeKind(i), nil
		}
	}
	return RangeNull, fmt.Errorf("unknown range kind %q", name)
}

// EndKind is the edge profile at one end of a range.
type EndKind uint8

const (
	EndNull EndKind = iota
	EndA
	EndV
	EndF
)

func (k EndKind) String() string {
	switch k {
	case EndA:
		return "A"
	case EndV:
		return "V"
	case EndF:
		return "F"
	}
	return "null"
}

// ============================================================
// Cut ranges
// ============================================================

var (
	// ErrTooShort is returned when a side is shorter than its two filler ends.
	ErrTooShort = errors.New("side shorter than its mantissas")
	// ErrNonStandard marks the leftover range no standard width fits.
	ErrNonStandard = errors.New("length is not covered by standard widths")
	// ErrBadWidth is returned for widths that are not positive multiples of
	// the grid modulus.
	ErrBadWidth = errors.New("standard width must be a positive multiple of the grid modulus")
)

// CutRange is one section of a side: Count panels of Length millimetres.
type CutRange struct {
	fault.Status

	Kind      RangeKind `json:"kind"`
	Length    int       `json:"length"`
	Count     int       `json:"count"`
	StartHole int       `json:"startHole"`
	Reused    bool      `json:"reused"`
}

// NewCutRange returns a range of count panels; count below one means one.
func NewCutRange(kind RangeKind, lengthMM, count int) *CutRange {
	if count < 1 {
		count = 1
	}
	return &CutRange{Kind: kind, Length: lengthMM, Count: count}
}

// Total returns the covered length in millimetres.
func (r *CutRange) Total() int { return r.Length * r.Count }

// SnCutRange is a cut range of the SN family carrying the edge profile at
// each end.
type SnCutRange struct {
	CutRange

	EndA EndKind `json:"endA"`
	EndB EndKind `json:"endB"`
}

func NewSnCutRange(lengthMM, count int, endA, endB EndKind) *SnCutRange {
	return &SnCutRange{CutRange: *NewCutRange(RangeSN, lengthMM, count), EndA: endA, EndB: endB}
}

// PlanCuts divides a side of lengthMM into ranges. The endL and endR
// mantissas become filler ranges of kind K at either end; the body between
// them is filled greedily with the widest standard widths first. A leftover
// no width fits is returned as a range marked invalid with ErrNonStandard.
func PlanCuts(kind RangeKind, lengthMM, endL, endR int, widths []int) ([]*CutRange, error) {
	body := lengthMM - endL - endR
	if body < 0 {
		return nil, fmt.Errorf("plan %d mm with ends %d/%d: %w", lengthMM, endL, endR, ErrTooShort)
	}
	ws := slices.Clone(widths)
	for _, w := range ws {
		if w <= 0 || w%grid.Modulus != 0 {
			return nil, fmt.Errorf("width %d: %w", w, ErrBadWidth)
		}
	}
	slices.Sort(ws)
	slices.Reverse(ws)

	var out []*CutRange
	if endL > 0 {
		out = append(out, NewCutRange(RangeK, endL, 1))
	}
	for _, w := range ws {
		if n := body / w; n > 0 {
			out = append(out, NewCutRange(kind, w, n))
			body -= n * w
		}
	}
	if body > 0 {
		left := NewCutRange(kind, body, 1)
		left.Fail(fault.CodeGeometry, fmt.Errorf("%d mm: %w", body, ErrNonStandard))
		out = append(out, left)
	}
	if endR > 0 {
		out = append(out, NewCutRange(RangeK, endR, 1))
	}
	return out, nil
}

// SnRanges converts ranges to SN ranges, giving the first the end profile
// endA and the last endB. Filler ranges keep kind K.
func SnRanges(ranges []*CutRange, endA, endB EndKind) []*SnCutRange {
	out := make([]*SnCutRange, len(ranges))
	for i, r := range ranges {
		out[i] = &SnCutRange{CutRange: *r}
		if r.Kind != RangeK {
			out[i].Kind = RangeSN
		}
	}
	if len(out) > 0 {
		out[0].EndA = endA
		out[len(out)-1].EndB = endB
	}
	return out
}

// TotalLength sums the covered length of ranges.
func TotalLength(ranges []*CutRange) int {
	n := 0
	for _, r := range ranges {
		n += r.Total()
	}
	return n
}

// DefaultWidths are the standard panel widths in millimetres.
var DefaultWidths = []int{600, 500, 450, 400, 350, 300, 250, 200, 150, 100}
