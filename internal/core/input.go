package core

// Action represents a semantic game action, abstracted from physical key presses.
// The platform maps keys to actions; the engine never sees raw keys.
type Action int

const (
	ActionNone          Action = iota
	ActionLeft                 // Left arrow, A - shift piece left
	ActionRight                // Right arrow, D - shift piece right
	ActionRotate               // Up arrow, Space, X - rotate clockwise
	ActionSoftDropStart        // Down arrow pressed - hold fast drop
	ActionSoftDropStop         // Down arrow released (or repeat timeout)
	ActionStart                // Enter - start a new game
	ActionRestart              // R - start over from any state
	ActionPause                // P - pause/unpause
	ActionMute                 // M - toggle sound
	ActionQuit                 // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRotate:
		return "Rotate"
	case ActionSoftDropStart:
		return "SoftDropStart"
	case ActionSoftDropStop:
		return "SoftDropStop"
	case ActionStart:
		return "Start"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionMute:
		return "Mute"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions collected between two refresh ticks.
// Order is preserved because several moves inside one frame are
// applied one after another (left, left, rotate).
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set appends an action to this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, x := range f.Actions {
		if x == a {
			return true
		}
	}
	return false
}

// Empty reports whether no action was collected.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	if f.Actions == nil {
		return InputFrame{}
	}
	clone := make([]Action, len(f.Actions))
	copy(clone, f.Actions)
	return InputFrame{Actions: clone}
}
