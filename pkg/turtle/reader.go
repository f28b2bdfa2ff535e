package turtle

import (
	"fmt"

	"github.com/aretw0/lindenmayer/pkg/domain"
	"github.com/aretw0/lindenmayer/pkg/ports"
)

// Reader drives a Cursor from a symbol stream.
type Reader struct {
	source  ports.SymbolSource
	actions map[domain.Symbol]Action

	cursor    Cursor
	cursors   []Cursor
	positions []Vec2
	angles    []Vec2

	segments []Segment
	bounds   Bounds
	steps    int64
	unknown  int64
}

// NewReader creates a reader over source. The action table is copied.
func NewReader(source ports.SymbolSource, actions map[domain.Symbol]Action, cursor Cursor) *Reader {
	table := make(map[domain.Symbol]Action, len(actions))
	for sym, a := range actions {
		table[sym] = a
	}
	return &Reader{
		source:  source,
		actions: table,
		cursor:  cursor,
		bounds:  Bounds{Min: cursor.Position(), Max: cursor.Position()},
	}
}

// DefaultActions returns the conventional table: F and G draw forward, f moves
// forward, + and - turn by angle degrees, [ and ] push and pop the cursor.
func DefaultActions(step, angle float64) map[domain.Symbol]Action {
	return map[domain.Symbol]Action{
		'F': DrawForward(step),
		'G': DrawForward(step),
		'f': MoveForward(step),
		'+': RotateDeg(angle),
		'-': RotateDeg(-angle),
		'[': PushCursor(),
		']': PopCursor(),
		'|': RotateDeg(180),
	}
}

// Step reads one symbol and applies its action. ok is false when the source is
// exhausted; the source error, if any, is returned then. Popping an empty stack
// returns an error wrapping domain.ErrEmptyStack.
func (r *Reader) Step() (a Action, ok bool, err error) {
	sym, ok := r.source.Next()
	if !ok {
		return Action{}, false, r.source.Err()
	}
	r.steps++

	a, known := r.actions[sym]
	if !known {
		r.unknown++
		return Action{Kind: KindUnknown}, true, nil
	}
	if err := r.apply(a); err != nil {
		return a, true, fmt.Errorf("symbol %q at step %d: %w", rune(sym), r.steps, err)
	}
	return a, true, nil
}

// Run steps until the source is exhausted or an error occurs.
func (r *Reader) Run() error {
	for {
		_, ok, err := r.Step()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

func (r *Reader) apply(a Action) error {
	switch a.Kind {
	case KindDrawForward:
		start := r.cursor.Position()
		r.cursor.Forward(a.Amount)
		r.draw(start)
	case KindMoveForward:
		r.cursor.Forward(a.Amount)
		r.bounds = r.bounds.Extend(r.cursor.Position())
	case KindDrawTo:
		start := r.cursor.Position()
		r.cursor.SetPosition(a.Target)
		r.draw(start)
	case KindMoveTo:
		r.cursor.SetPosition(a.Target)
		r.bounds = r.bounds.Extend(a.Target)
	case KindRotateRad:
		r.cursor.Rotate(a.Amount)
	case KindRotateDeg:
		r.cursor.RotateDegrees(a.Amount)
	case KindSetAngle:
		return r.cursor.SetHeading(a.Target)
	case KindPushCursor:
		r.cursors = append(r.cursors, r.cursor)
	case KindPopCursor:
		c, err := pop(&r.cursors, "cursors")
		if err != nil {
			return err
		}
		r.cursor = c
	case KindPushPosition:
		r.positions = append(r.positions, r.cursor.Position())
	case KindPopPosition:
		p, err := pop(&r.positions, "positions")
		if err != nil {
			return err
		}
		r.cursor.SetPosition(p)
	case KindPushAngle:
		r.angles = append(r.angles, r.cursor.Heading())
	case KindPopAngle:
		h, err := pop(&r.angles, "angles")
		if err != nil {
			return err
		}
		return r.cursor.SetHeading(h)
	}
	return nil
}

func (r *Reader) draw(start Vec2) {
	end := r.cursor.Position()
	r.segments = append(r.segments, Segment{Start: start, End: end})
	r.bounds = r.bounds.Extend(end)
}

func pop[T any](stack *[]T, name string) (T, error) {
	s := *stack
	if len(s) == 0 {
		var zero T
		return zero, fmt.Errorf("%s: %w", name, domain.ErrEmptyStack)
	}
	v := s[len(s)-1]
	*stack = s[:len(s)-1]
	return v, nil
}

// Cursor returns the current cursor.
func (r *Reader) Cursor() Cursor { return r.cursor }

// Segments returns the segments drawn so far. The slice must not be modified.
func (r *Reader) Segments() []Segment { return r.segments }

// Bounds returns the box covering every visited position.
func (r *Reader) Bounds() Bounds { return r.bounds }

// Steps returns the number of symbols read.
func (r *Reader) Steps() int64 { return r.steps }

// Unknown returns the number of symbols that had no action.
func (r *Reader) Unknown() int64 { return r.unknown }

// Depth returns the size of the cursor stack.
func (r *Reader) Depth() int { return len(r.cursors) }
