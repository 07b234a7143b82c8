package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, Up arrow - cursor up
	ActionDown             // S, Down arrow - cursor down
	ActionLeft             // A, Left arrow - cursor left
	ActionRight            // D, Right arrow - cursor right
	ActionSide             // Space, Tab - next vertex of the cursor cell
	ActionRotateCW         // X, Enter - turn the group clockwise
	ActionRotateCCW        // Z - turn the group counter-clockwise
	ActionRestart          // R - new game after game over
	ActionPause            // P - pause/unpause
	ActionQuit             // Q, Ctrl+C - leave the game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSide:
		return "Side"
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// MouseKind is what happened to the mouse button.
type MouseKind int

const (
	MousePress MouseKind = iota
	MouseRelease
)

// MouseEvent is a left-button event in screen cells.
type MouseEvent struct {
	X, Y int
	Kind MouseKind
}

// InputFrame represents the input received during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
	// Mouse holds button events in arrival order.
	Mouse []MouseEvent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// AddMouse appends a mouse event to the frame.
func (f *InputFrame) AddMouse(e MouseEvent) {
	f.Mouse = append(f.Mouse, e)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all input for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Mouse = f.Mouse[:0]
}
