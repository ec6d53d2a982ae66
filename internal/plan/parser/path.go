package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"formwork/internal/plan/models"
)

// ============================================================
// Path Parser
// ============================================================

// Contour is one subpath of an SVG path.
type Contour struct {
	Points []models.Point
	Closed bool
}

var pathToken = regexp.MustCompile(`[A-Za-z]|[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)

// ParsePath parses the straight-segment commands M, L, H, V and Z in both
// absolute and relative form. Coordinates following a command repeat it;
// extra pairs after M are line-tos. Curves are rejected.
func ParsePath(d string) ([]Contour, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, fmt.Errorf("empty path")
	}

	tokens := pathToken.FindAllString(d, -1)
	var (
		contours []Contour
		cur      *Contour
		x, y     float64
		startX   float64
		startY   float64
		cmd      byte
	)

	next := func(i *int) (float64, bool) {
		if *i >= len(tokens) || isCommand(tokens[*i]) {
			return 0, false
		}
		v, err := strconv.ParseFloat(tokens[*i], 64)
		if err != nil {
			return 0, false
		}
		*i++
		return v, true
	}
	emit := func() {
		if cur == nil {
			// drawing on after a closepath starts from the closed subpath's start
			contours = append(contours, Contour{Points: []models.Point{{X: startX, Y: startY}}})
			cur = &contours[len(contours)-1]
		}
		cur.Points = append(cur.Points, models.Point{X: x, Y: y})
	}

	for i := 0; i < len(tokens); {
		if isCommand(tokens[i]) {
			cmd = tokens[i][0]
			i++
		} else if cmd == 0 {
			return nil, fmt.Errorf("path must start with a command, got %q", tokens[i])
		}

		switch cmd {
		case 'M', 'm':
			a, ok1 := next(&i)
			b, ok2 := next(&i)
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("moveto needs two coordinates")
			}
			if cmd == 'm' {
				a, b = x+a, y+b
			}
			x, y = a, b
			startX, startY = x, y
			contours = append(contours, Contour{Points: []models.Point{{X: x, Y: y}}})
			cur = &contours[len(contours)-1]
			// implicit line-tos
			if cmd == 'M' {
				cmd = 'L'
			} else {
				cmd = 'l'
			}

		case 'L', 'l':
			a, ok1 := next(&i)
			b, ok2 := next(&i)
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("lineto needs two coordinates")
			}
			if cmd == 'l' {
				a, b = x+a, y+b
			}
			x, y = a, b
			emit()

		case 'H', 'h':
			a, ok := next(&i)
			if !ok {
				return nil, fmt.Errorf("horizontal lineto needs a coordinate")
			}
			if cmd == 'h' {
				a += x
			}
			x = a
			emit()

		case 'V', 'v':
			b, ok := next(&i)
			if !ok {
				return nil, fmt.Errorf("vertical lineto needs a coordinate")
			}
			if cmd == 'v' {
				b += y
			}
			y = b
			emit()

		case 'Z', 'z':
			if cur != nil {
				cur.Closed = true
				cur = nil
			}
			x, y = startX, startY
			// a number after Z cannot continue it
			if i < len(tokens) && !isCommand(tokens[i]) {
				return nil, fmt.Errorf("unexpected coordinate %q after closepath", tokens[i])
			}

		default:
			return nil, fmt.Errorf("unsupported path command %q", string(cmd))
		}
	}

	return contours, nil
}

func isCommand(tok string) bool {
	c := tok[0]
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
