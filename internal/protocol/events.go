package protocol

import "github.com/Nisugi/two-face-sub002/internal/segment"

// Event is one parsed occurrence from the game feed. The set is closed;
// consumers switch on the concrete type.
type Event interface {
	event()
}

// Text is styled content for a stream. Runs arrive as emitted and may merge
// downstream; Stream "" is the main window.
type Text struct {
	Stream string
	Seg    segment.Segment
}

// EndLine terminates the logical line under assembly for a stream.
type EndLine struct {
	Stream string
}

// Clear empties a stream's window, typically right before a resend.
type Clear struct {
	Stream string
}

// Window carries stream window metadata. Subtitle holds the room name on
// the room window.
type Window struct {
	ID       string
	Title    string
	Subtitle string
}

// Component is one named piece of the room description.
type Component struct {
	ID   string
	Segs segment.Line
}

// Prompt is the game prompt text, shown in the status bar.
type Prompt struct {
	Text string
}

// Vitals is a progress bar update (health, mana, stamina, spirit, ...).
type Vitals struct {
	Bar   string
	Value int
	Label string
}

// Roundtime announces the unix second until which the character is busy.
type Roundtime struct {
	Until int64
}

// Spell is the currently prepared spell, empty for none.
type Spell struct {
	Name string
}

func (Text) event()      {}
func (EndLine) event()   {}
func (Clear) event()     {}
func (Window) event()    {}
func (Component) event() {}
func (Prompt) event()    {}
func (Vitals) event()    {}
func (Roundtime) event() {}
func (Spell) event()     {}
