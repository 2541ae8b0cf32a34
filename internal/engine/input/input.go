// Package input translates SDL2 events into viewer events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a viewer event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseDrag
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	// DeltaX and DeltaY hold drag motion in pixels or wheel steps.
	DeltaX float32
	DeltaY float32
}

// Input collects the events of one frame.
type Input struct {
	events   []Event
	dragging bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events. Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.handle(event) {
			return true
		}
	}
	return false
}

func (i *Input) handle(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})
		return true
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		}
	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return false
		}
		typ := EventKeyUp
		if e.Type == sdl.KEYDOWN {
			typ = EventKeyDown
		}
		i.events = append(i.events, Event{Type: typ, Key: e.Keysym.Scancode})
		if typ == EventKeyDown && e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
			i.events = append(i.events, Event{Type: EventQuit})
			return true
		}
	case *sdl.MouseButtonEvent:
		if e.Button == sdl.BUTTON_LEFT {
			i.dragging = e.Type == sdl.MOUSEBUTTONDOWN
		}
	case *sdl.MouseMotionEvent:
		if i.dragging {
			i.events = append(i.events, Event{
				Type:   EventMouseDrag,
				DeltaX: float32(e.XRel),
				DeltaY: float32(e.YRel),
			})
		}
	case *sdl.MouseWheelEvent:
		i.events = append(i.events, Event{
			Type:   EventMouseWheel,
			DeltaY: float32(e.Y),
		})
	}
	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}
