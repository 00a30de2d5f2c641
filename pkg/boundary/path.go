package boundary

import (
	"strconv"
	"strings"

	"github.com/chazu/filigree/pkg/geom"
)

// curveSteps is the fixed subdivision count used to flatten quadratic and
// cubic curve commands into line segments.
const curveSteps = 16

// parsePath converts SVG path data into an ordered vertex list. Supported
// commands: M/m, L/l, H/h, V/v, C/c, Q/q, Z/z; curves are flattened by
// fixed subdivision. Exactly one subpath is accepted, since a boundary is
// a single closed outline.
func parsePath(data string) (pts []geom.Point, closed bool, err error) {
	p := &pathParser{src: data}
	return p.run()
}

type pathParser struct {
	src string
	pos int

	pts     []geom.Point
	cur     geom.Point
	started bool
	closed  bool
}

func (p *pathParser) run() ([]geom.Point, bool, error) {
	for {
		p.skipSeparators()
		if p.pos >= len(p.src) {
			break
		}
		cmd := p.src[p.pos]
		if !isCommand(cmd) {
			return nil, false, errf("expected path command at position %d, found %q", p.pos, string(cmd))
		}
		p.pos++
		if p.closed {
			return nil, false, errf("content after Z: boundary must be a single closed subpath")
		}
		if err := p.apply(cmd); err != nil {
			return nil, false, err
		}
	}
	if !p.started {
		return nil, false, errf("empty path")
	}
	return p.pts, p.closed, nil
}

func (p *pathParser) apply(cmd byte) error {
	rel := cmd >= 'a' && cmd <= 'z'
	switch cmd {
	case 'M', 'm':
		if p.started {
			return errf("multiple subpaths: boundary must be a single closed outline")
		}
		x, y, err := p.coordPair(cmd)
		if err != nil {
			return err
		}
		p.moveTo(geom.Point{X: x, Y: y})
		// Extra coordinate pairs after a moveto are implicit linetos.
		for p.hasNumber() {
			x, y, err = p.coordPair(cmd)
			if err != nil {
				return err
			}
			p.lineTo(p.abs(rel, x, y))
		}

	case 'L', 'l':
		if err := p.needStart(cmd); err != nil {
			return err
		}
		for first := true; first || p.hasNumber(); first = false {
			x, y, err := p.coordPair(cmd)
			if err != nil {
				return err
			}
			p.lineTo(p.abs(rel, x, y))
		}

	case 'H', 'h':
		if err := p.needStart(cmd); err != nil {
			return err
		}
		for first := true; first || p.hasNumber(); first = false {
			x, err := p.number(cmd)
			if err != nil {
				return err
			}
			if rel {
				x += p.cur.X
			}
			p.lineTo(geom.Point{X: x, Y: p.cur.Y})
		}

	case 'V', 'v':
		if err := p.needStart(cmd); err != nil {
			return err
		}
		for first := true; first || p.hasNumber(); first = false {
			y, err := p.number(cmd)
			if err != nil {
				return err
			}
			if rel {
				y += p.cur.Y
			}
			p.lineTo(geom.Point{X: p.cur.X, Y: y})
		}

	case 'C', 'c':
		if err := p.needStart(cmd); err != nil {
			return err
		}
		for first := true; first || p.hasNumber(); first = false {
			c, err := p.points(cmd, rel, 3)
			if err != nil {
				return err
			}
			p.flattenCubic(p.cur, c[0], c[1], c[2])
		}

	case 'Q', 'q':
		if err := p.needStart(cmd); err != nil {
			return err
		}
		for first := true; first || p.hasNumber(); first = false {
			c, err := p.points(cmd, rel, 2)
			if err != nil {
				return err
			}
			p.flattenQuad(p.cur, c[0], c[1])
		}

	case 'Z', 'z':
		if err := p.needStart(cmd); err != nil {
			return err
		}
		p.closed = true

	default:
		return errf("unsupported path command %q", string(cmd))
	}
	return nil
}

func (p *pathParser) needStart(cmd byte) error {
	if !p.started {
		return errf("command %q before initial moveto", string(cmd))
	}
	return nil
}

func (p *pathParser) moveTo(pt geom.Point) {
	p.started = true
	p.cur = pt
	p.pts = append(p.pts, pt)
}

func (p *pathParser) lineTo(pt geom.Point) {
	p.cur = pt
	p.pts = append(p.pts, pt)
}

func (p *pathParser) abs(rel bool, x, y float64) geom.Point {
	if rel {
		return geom.Point{X: p.cur.X + x, Y: p.cur.Y + y}
	}
	return geom.Point{X: x, Y: y}
}

// points reads n coordinate pairs, applying relative offsets to each.
func (p *pathParser) points(cmd byte, rel bool, n int) ([]geom.Point, error) {
	out := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		x, y, err := p.coordPair(cmd)
		if err != nil {
			return nil, err
		}
		out[i] = p.abs(rel, x, y)
	}
	return out, nil
}

// flattenCubic appends a fixed-step polyline approximation of the cubic
// Bezier (p0, c1, c2, p1), excluding p0.
func (p *pathParser) flattenCubic(p0, c1, c2, p1 geom.Point) {
	for i := 1; i <= curveSteps; i++ {
		t := float64(i) / curveSteps
		u := 1 - t
		x := u*u*u*p0.X + 3*u*u*t*c1.X + 3*u*t*t*c2.X + t*t*t*p1.X
		y := u*u*u*p0.Y + 3*u*u*t*c1.Y + 3*u*t*t*c2.Y + t*t*t*p1.Y
		p.lineTo(geom.Point{X: x, Y: y})
	}
}

// flattenQuad appends a fixed-step polyline approximation of the quadratic
// Bezier (p0, c, p1), excluding p0.
func (p *pathParser) flattenQuad(p0, c, p1 geom.Point) {
	for i := 1; i <= curveSteps; i++ {
		t := float64(i) / curveSteps
		u := 1 - t
		x := u*u*p0.X + 2*u*t*c.X + t*t*p1.X
		y := u*u*p0.Y + 2*u*t*c.Y + t*t*p1.Y
		p.lineTo(geom.Point{X: x, Y: y})
	}
}

// ---------------------------------------------------------------------------
// Tokenizing
// ---------------------------------------------------------------------------

func isCommand(c byte) bool {
	return strings.IndexByte("MmLlHhVvCcQqZzSsTtAa", c) >= 0
}

func (p *pathParser) skipSeparators() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',' {
			p.pos++
			continue
		}
		break
	}
}

// hasNumber reports whether the next token is numeric (a repeated
// coordinate group for the current command).
func (p *pathParser) hasNumber() bool {
	p.skipSeparators()
	if p.pos >= len(p.src) {
		return false
	}
	c := p.src[p.pos]
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

func (p *pathParser) number(cmd byte) (float64, error) {
	p.skipSeparators()
	start := p.pos
	if p.pos < len(p.src) && (p.src[p.pos] == '-' || p.src[p.pos] == '+') {
		p.pos++
	}
	digits := false
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
		digits = true
	}
	if p.pos < len(p.src) && p.src[p.pos] == '.' {
		p.pos++
		for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			p.pos++
			digits = true
		}
	}
	if digits && p.pos < len(p.src) && (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') {
		mark := p.pos
		p.pos++
		if p.pos < len(p.src) && (p.src[p.pos] == '-' || p.src[p.pos] == '+') {
			p.pos++
		}
		expDigits := false
		for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			p.pos++
			expDigits = true
		}
		if !expDigits {
			p.pos = mark
		}
	}
	if !digits {
		return 0, errf("command %q: expected number at position %d", string(cmd), start)
	}
	f, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, errf("command %q: bad number %q", string(cmd), p.src[start:p.pos])
	}
	return f, nil
}

func (p *pathParser) coordPair(cmd byte) (x, y float64, err error) {
	x, err = p.number(cmd)
	if err != nil {
		return 0, 0, err
	}
	y, err = p.number(cmd)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
