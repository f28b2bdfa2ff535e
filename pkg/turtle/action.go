package turtle

// Kind identifies what an Action does to the cursor.
type Kind int

const (
	// KindNone does nothing.
	KindNone Kind = iota
	// KindUnknown is reported for symbols missing from the action table.
	KindUnknown
	// KindCustom does nothing to the cursor; Name is reported to the caller.
	KindCustom
	// KindMoveForward moves along the heading without drawing.
	KindMoveForward
	// KindDrawForward moves along the heading and records a segment.
	KindDrawForward
	// KindMoveTo jumps to Target without drawing.
	KindMoveTo
	// KindDrawTo draws a segment to Target.
	KindDrawTo
	// KindRotateRad turns by Amount radians.
	KindRotateRad
	// KindRotateDeg turns by Amount degrees.
	KindRotateDeg
	// KindSetAngle replaces the heading with Target.
	KindSetAngle
	// KindPushCursor saves position and heading.
	KindPushCursor
	// KindPopCursor restores the last saved cursor.
	KindPopCursor
	// KindPushPosition saves the position only.
	KindPushPosition
	// KindPopPosition restores the last saved position.
	KindPopPosition
	// KindPushAngle saves the heading only.
	KindPushAngle
	// KindPopAngle restores the last saved heading.
	KindPopAngle
)

var kindNames = [...]string{
	"none", "unknown", "custom", "move_forward", "draw_forward", "move_to", "draw_to",
	"rotate_rad", "rotate_deg", "set_angle", "push_cursor", "pop_cursor",
	"push_position", "pop_position", "push_angle", "pop_angle",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// Action is one cursor instruction. Only the fields relevant to Kind are used.
type Action struct {
	Kind   Kind
	Amount float64 // distance or angle
	Target Vec2    // position or heading
	Name   string  // custom actions
}

// None returns an action that does nothing.
func None() Action { return Action{Kind: KindNone} }

// Custom returns an action that only reports name to the caller.
func Custom(name string) Action { return Action{Kind: KindCustom, Name: name} }

// MoveForward moves d along the heading without drawing.
func MoveForward(d float64) Action { return Action{Kind: KindMoveForward, Amount: d} }

// DrawForward draws a segment of length d along the heading.
func DrawForward(d float64) Action { return Action{Kind: KindDrawForward, Amount: d} }

// MoveTo jumps to p without drawing.
func MoveTo(p Vec2) Action { return Action{Kind: KindMoveTo, Target: p} }

// DrawTo draws a segment to p.
func DrawTo(p Vec2) Action { return Action{Kind: KindDrawTo, Target: p} }

// RotateRad turns by rad radians, counterclockwise.
func RotateRad(rad float64) Action { return Action{Kind: KindRotateRad, Amount: rad} }

// RotateDeg turns by deg degrees, counterclockwise.
func RotateDeg(deg float64) Action { return Action{Kind: KindRotateDeg, Amount: deg} }

// SetAngle points the cursor along heading, which must be non-zero.
func SetAngle(heading Vec2) Action { return Action{Kind: KindSetAngle, Target: heading} }

// PushCursor saves the whole cursor.
func PushCursor() Action { return Action{Kind: KindPushCursor} }

// PopCursor restores the last saved cursor.
func PopCursor() Action { return Action{Kind: KindPopCursor} }

// PushPosition saves the position.
func PushPosition() Action { return Action{Kind: KindPushPosition} }

// PopPosition restores the last saved position, keeping the heading.
func PopPosition() Action { return Action{Kind: KindPopPosition} }

// PushAngle saves the heading.
func PushAngle() Action { return Action{Kind: KindPushAngle} }

// PopAngle restores the last saved heading, keeping the position.
func PopAngle() Action { return Action{Kind: KindPopAngle} }
