package shape

import (
	"errors"
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/spatial/r2"
)

// Op identifies a path drawing command.
type Op uint8

const (
	OpMoveTo Op = iota
	OpLineTo
	OpQuadTo
	OpCubicTo
	OpClose
)

func (o Op) String() string {
	switch o {
	case OpMoveTo:
		return "M"
	case OpLineTo:
		return "L"
	case OpQuadTo:
		return "Q"
	case OpCubicTo:
		return "C"
	case OpClose:
		return "Z"
	default:
		return "?"
	}
}

// Command is one absolute drawing command. Pts holds, in order, the control
// points followed by the end point: one point for MoveTo/LineTo, two for
// QuadTo, three for CubicTo and none for Close.
type Command struct {
	Op  Op
	Pts [3]r2.Vec
}

// End returns the command's end point. Close has no end point of its own.
func (c Command) End() r2.Vec {
	switch c.Op {
	case OpMoveTo, OpLineTo:
		return c.Pts[0]
	case OpQuadTo:
		return c.Pts[1]
	case OpCubicTo:
		return c.Pts[2]
	}
	return r2.Vec{}
}

// Outline is a parsed vector path in authoring coordinates. All commands are
// absolute; arcs and shorthand curves are expanded at parse time.
type Outline struct {
	Commands []Command
}

// Len returns the number of commands.
func (o Outline) Len() int { return len(o.Commands) }

var (
	// ErrEmptyPath is returned when path data contains no drawing commands.
	ErrEmptyPath = errors.New("shape: empty path data")
)

// SyntaxError reports malformed path data.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("shape: path syntax error at offset %d: %s", e.Offset, e.Msg)
}

// ParsePath parses SVG path data ("d" attribute) into an Outline.
func ParsePath(d string) (Outline, error) {
	p := pathParser{s: d}
	if err := p.parse(); err != nil {
		return Outline{}, err
	}
	if len(p.out) == 0 {
		return Outline{}, ErrEmptyPath
	}
	return Outline{Commands: p.out}, nil
}

type pathParser struct {
	s string
	i int

	out []Command

	cur, start r2.Vec
	// Reflection sources for S/s and T/t.
	lastCubicCtrl, lastQuadCtrl r2.Vec
	lastOp                      byte
}

func (p *pathParser) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: p.i, Msg: fmt.Sprintf(format, args...)}
}

func (p *pathParser) skipSeparators() {
	for p.i < len(p.s) {
		switch p.s[p.i] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			p.i++
		default:
			return
		}
	}
}

func (p *pathParser) atNumber() bool {
	p.skipSeparators()
	if p.i >= len(p.s) {
		return false
	}
	c := p.s[p.i]
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

// number scans one floating point literal. A second decimal point or a sign
// starts the next number, so "1.5.5" is 1.5 then .5 and "3-2" is 3 then -2.
func (p *pathParser) number() (float64, error) {
	p.skipSeparators()
	start := p.i
	if p.i < len(p.s) && (p.s[p.i] == '-' || p.s[p.i] == '+') {
		p.i++
	}
	digits := 0
	for p.i < len(p.s) && isDigit(p.s[p.i]) {
		p.i++
		digits++
	}
	if p.i < len(p.s) && p.s[p.i] == '.' {
		p.i++
		for p.i < len(p.s) && isDigit(p.s[p.i]) {
			p.i++
			digits++
		}
	}
	if digits == 0 {
		p.i = start
		return 0, p.errorf("expected number")
	}
	if p.i < len(p.s) && (p.s[p.i] == 'e' || p.s[p.i] == 'E') {
		j := p.i + 1
		if j < len(p.s) && (p.s[j] == '-' || p.s[j] == '+') {
			j++
		}
		if j < len(p.s) && isDigit(p.s[j]) {
			for j < len(p.s) && isDigit(p.s[j]) {
				j++
			}
			p.i = j
		}
	}
	v, err := strconv.ParseFloat(p.s[start:p.i], 64)
	if err != nil {
		return 0, p.errorf("bad number %q", p.s[start:p.i])
	}
	return v, nil
}

// flag scans an arc flag, which may be packed without separators ("a1 1 0 011 1").
func (p *pathParser) flag() (bool, error) {
	p.skipSeparators()
	if p.i >= len(p.s) {
		return false, p.errorf("expected flag")
	}
	switch p.s[p.i] {
	case '0':
		p.i++
		return false, nil
	case '1':
		p.i++
		return true, nil
	}
	return false, p.errorf("expected flag, got %q", p.s[p.i])
}

func (p *pathParser) point(rel bool) (r2.Vec, error) {
	x, err := p.number()
	if err != nil {
		return r2.Vec{}, err
	}
	y, err := p.number()
	if err != nil {
		return r2.Vec{}, err
	}
	v := r2.Vec{X: x, Y: y}
	if rel {
		v = r2.Add(v, p.cur)
	}
	return v, nil
}

func (p *pathParser) parse() error {
	for {
		p.skipSeparators()
		if p.i >= len(p.s) {
			return nil
		}
		c := p.s[p.i]
		if !isCommand(c) {
			return p.errorf("unexpected %q", c)
		}
		p.i++
		if len(p.out) == 0 && c != 'M' && c != 'm' {
			return p.errorf("path must start with moveto, got %q", c)
		}
		if err := p.command(c); err != nil {
			return err
		}
	}
}

// command consumes one command letter's argument groups, including implicit
// repeats.
func (p *pathParser) command(c byte) error {
	rel := c >= 'a'
	upper := c &^ 0x20

	if upper == 'Z' {
		p.emit(Command{Op: OpClose})
		p.cur = p.start
		p.lastOp = 'Z'
		return nil
	}

	first := true
	for first || p.atNumber() {
		var err error
		switch upper {
		case 'M':
			if first {
				err = p.moveTo(rel)
			} else {
				// Extra coordinate pairs after a moveto are implicit linetos.
				err = p.lineTo(rel)
			}
		case 'L':
			err = p.lineTo(rel)
		case 'H':
			err = p.horizontal(rel)
		case 'V':
			err = p.vertical(rel)
		case 'C':
			err = p.cubic(rel, false)
		case 'S':
			err = p.cubic(rel, true)
		case 'Q':
			err = p.quad(rel, false)
		case 'T':
			err = p.quad(rel, true)
		case 'A':
			err = p.arc(rel)
		}
		if err != nil {
			return err
		}
		first = false
	}
	return nil
}

func (p *pathParser) emit(c Command) {
	p.out = append(p.out, c)
}

func (p *pathParser) moveTo(rel bool) error {
	pt, err := p.point(rel)
	if err != nil {
		return err
	}
	p.emit(Command{Op: OpMoveTo, Pts: [3]r2.Vec{pt}})
	p.cur, p.start = pt, pt
	p.lastOp = 'M'
	return nil
}

func (p *pathParser) lineTo(rel bool) error {
	pt, err := p.point(rel)
	if err != nil {
		return err
	}
	p.line(pt)
	return nil
}

func (p *pathParser) line(pt r2.Vec) {
	p.emit(Command{Op: OpLineTo, Pts: [3]r2.Vec{pt}})
	p.cur = pt
	p.lastOp = 'L'
}

func (p *pathParser) horizontal(rel bool) error {
	x, err := p.number()
	if err != nil {
		return err
	}
	if rel {
		x += p.cur.X
	}
	p.line(r2.Vec{X: x, Y: p.cur.Y})
	return nil
}

func (p *pathParser) vertical(rel bool) error {
	y, err := p.number()
	if err != nil {
		return err
	}
	if rel {
		y += p.cur.Y
	}
	p.line(r2.Vec{X: p.cur.X, Y: y})
	return nil
}

func (p *pathParser) cubic(rel, smooth bool) error {
	var c1 r2.Vec
	if smooth {
		c1 = p.cur
		if p.lastOp == 'C' {
			c1 = r2.Sub(r2.Scale(2, p.cur), p.lastCubicCtrl)
		}
	} else {
		var err error
		if c1, err = p.point(rel); err != nil {
			return err
		}
	}
	c2, err := p.point(rel)
	if err != nil {
		return err
	}
	end, err := p.point(rel)
	if err != nil {
		return err
	}
	p.emit(Command{Op: OpCubicTo, Pts: [3]r2.Vec{c1, c2, end}})
	p.lastCubicCtrl = c2
	p.cur = end
	p.lastOp = 'C'
	return nil
}

func (p *pathParser) quad(rel, smooth bool) error {
	var ctrl r2.Vec
	if smooth {
		ctrl = p.cur
		if p.lastOp == 'Q' {
			ctrl = r2.Sub(r2.Scale(2, p.cur), p.lastQuadCtrl)
		}
	} else {
		var err error
		if ctrl, err = p.point(rel); err != nil {
			return err
		}
	}
	end, err := p.point(rel)
	if err != nil {
		return err
	}
	p.emit(Command{Op: OpQuadTo, Pts: [3]r2.Vec{ctrl, end}})
	p.lastQuadCtrl = ctrl
	p.cur = end
	p.lastOp = 'Q'
	return nil
}

func (p *pathParser) arc(rel bool) error {
	rx, err := p.number()
	if err != nil {
		return err
	}
	ry, err := p.number()
	if err != nil {
		return err
	}
	rot, err := p.number()
	if err != nil {
		return err
	}
	large, err := p.flag()
	if err != nil {
		return err
	}
	sweep, err := p.flag()
	if err != nil {
		return err
	}
	end, err := p.point(rel)
	if err != nil {
		return err
	}
	segs := arcToCubics(p.cur, end, rx, ry, rot, large, sweep)
	if segs == nil {
		// Zero radius degrades to a straight line.
		p.line(end)
		return nil
	}
	for _, s := range segs {
		p.emit(Command{Op: OpCubicTo, Pts: s})
	}
	p.cur = end
	p.lastOp = 'A'
	return nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isCommand(c byte) bool {
	switch c &^ 0x20 {
	case 'M', 'L', 'H', 'V', 'C', 'S', 'Q', 'T', 'A', 'Z':
		return true
	}
	return false
}
