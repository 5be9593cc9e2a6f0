package core

// Action is a key-independent intent. Front ends own the key bindings;
// games only see actions.
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionConfirm
	ActionBack
	ActionRestart
	ActionQuit
	ActionPause
)

var actionNames = [...]string{
	ActionNone:    "none",
	ActionUp:      "up",
	ActionDown:    "down",
	ActionLeft:    "left",
	ActionRight:   "right",
	ActionConfirm: "confirm",
	ActionBack:    "back",
	ActionRestart: "restart",
	ActionQuit:    "quit",
	ActionPause:   "pause",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// InputFrame is the set of actions pressed since the previous tick.
type InputFrame struct {
	bits uint16
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set adds a to the frame.
func (f *InputFrame) Set(a Action) {
	f.bits |= 1 << a
}

// Has reports whether a was pressed.
func (f InputFrame) Has(a Action) bool {
	return f.bits&(1<<a) != 0
}

// Clear empties the frame for the next tick.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// Directional returns the first direction pressed, checked in up, down,
// left, right order. Only one slide is applied per tick.
func (f InputFrame) Directional() (Action, bool) {
	for _, a := range [...]Action{ActionUp, ActionDown, ActionLeft, ActionRight} {
		if f.Has(a) {
			return a, true
		}
	}
	return ActionNone, false
}
