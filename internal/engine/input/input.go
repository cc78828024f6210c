// Package input converts window-system events into backend-neutral input events.
package input

// EventType identifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Key is a backend-neutral key code for the keys the viewer binds.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyR
	KeyS
	KeyF5
	KeyF12
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

// Modifier bits held while a key event fired.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// Button is a mouse button.
type Button uint8

const (
	ButtonLeft Button = iota + 1
	ButtonMiddle
	ButtonRight
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Mods   Modifier
	Width  int
	Height int
	MouseX float32
	MouseY float32
	Button Button
}

// Has reports whether the modifier was held.
func (e Event) Has(m Modifier) bool {
	return e.Mods&m != 0
}

// PresetIndex returns the zero-based preset slot for number keys 1-9, or -1.
func (k Key) PresetIndex() int {
	if k >= Key1 && k <= Key9 {
		return int(k - Key1)
	}
	return -1
}

// Queue collects events between polls.
type Queue struct {
	events []Event
}

// NewQueue creates an event queue.
func NewQueue() *Queue {
	return &Queue{events: make([]Event, 0, 16)}
}

// Push appends an event.
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Drain returns the queued events and empties the queue.
// The returned slice is valid until the next Push.
func (q *Queue) Drain() []Event {
	out := q.events
	q.events = q.events[:0]
	return out
}
