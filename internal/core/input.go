package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move paddle left
	ActionRight          // D, Right arrow - move paddle right
	ActionLaunch         // Space - release the ball from the paddle
	ActionUp             // W, Up arrow - previous level in menu
	ActionDown           // S, Down arrow - next level in menu
	ActionConfirm        // Enter - start level / leave win screen
	ActionPause          // P - pause/unpause
	ActionQuit           // Q, Ctrl+C - exit
	actionCount
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
	case ActionLaunch:
		return "Launch"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is a snapshot of boolean key states for one simulation tick,
// indexed by Action. The zero value has every action released.
type InputFrame struct {
	keys [actionCount]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if a <= ActionNone || a >= actionCount {
		return
	}
	f.keys[a] = true
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if a <= ActionNone || a >= actionCount {
		return false
	}
	return f.keys[a]
}

// Clear releases all actions for the next frame.
func (f *InputFrame) Clear() {
	f.keys = [actionCount]bool{}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	return f
}

// KeyLatch turns discrete key-press events into held key states.
// Terminals report presses (and auto-repeat) rather than key-up events, so a
// pressed action stays held for a number of ticks after its last press.
type KeyLatch struct {
	hold      int
	remaining [actionCount]int
}

// NewKeyLatch creates a latch that keeps each press held for hold ticks.
func NewKeyLatch(hold int) *KeyLatch {
	if hold < 1 {
		hold = 1
	}
	return &KeyLatch{hold: hold}
}

// Press records a key press for the given action.
func (l *KeyLatch) Press(a Action) {
	if a <= ActionNone || a >= actionCount {
		return
	}
	l.remaining[a] = l.hold
}

// Tap records a press that stays held for exactly one tick.
func (l *KeyLatch) Tap(a Action) {
	if a <= ActionNone || a >= actionCount {
		return
	}
	if l.remaining[a] < 1 {
		l.remaining[a] = 1
	}
}

// Frame returns the held states for this tick and ages every latch by one tick.
func (l *KeyLatch) Frame() InputFrame {
	var f InputFrame
	for a := range l.remaining {
		if l.remaining[a] > 0 {
			f.keys[a] = true
			l.remaining[a]--
		}
	}
	return f
}

// Release drops every held action.
func (l *KeyLatch) Release() {
	l.remaining = [actionCount]int{}
}
