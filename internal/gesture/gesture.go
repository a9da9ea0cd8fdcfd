// Package gesture models the touch interaction on a task row as a small
// state machine, so the drag/swipe thresholds and their mutual exclusion
// are testable in isolation from rendering.
//
// Two gestures start from the same touch-down:
//
//   - a vertical drag (reorder) arms once the finger moves more than
//     10px vertically; the drop target is resolved by the caller via
//     hit-testing at the final touch point.
//   - a horizontal swipe arms on dominant horizontal movement; releasing
//     past 100px left deletes the task, past 100px right completes it,
//     anything short of the threshold snaps back.
package gesture

import "math"

// State of the tracker between touch-down and touch-end.
type State int

const (
	Idle State = iota
	Pressed
	Dragging
	Swiping
)

// Intent is the outcome of a released gesture.
type Intent int

const (
	// IntentNone: a tap or an under-threshold swipe; nothing happens.
	IntentNone Intent = iota
	// IntentDrop: a drag ended; the caller hit-tests the release point
	// for a task row and issues the reorder.
	IntentDrop
	// IntentDelete: swiped left past the threshold.
	IntentDelete
	// IntentComplete: swiped right past the threshold.
	IntentComplete
)

const (
	dragThreshold  = 10.0  // px of vertical movement before a drag arms
	swipeThreshold = 100.0 // px of horizontal travel to trigger an action
)

// Tracker follows one touch sequence. Zero value is Idle.
type Tracker struct {
	state          State
	startX, startY float64
	curX, curY     float64
}

func (g *Tracker) State() State { return g.state }

// Offset returns the current horizontal displacement, used by the
// presentation layer to slide the row while swiping.
func (g *Tracker) Offset() float64 {
	if g.state != Swiping {
		return 0
	}
	return g.curX - g.startX
}

// Start begins a touch sequence at (x, y).
func (g *Tracker) Start(x, y float64) {
	g.state = Pressed
	g.startX, g.startY = x, y
	g.curX, g.curY = x, y
}

// Move updates the touch point and returns the resulting state. The
// first axis to exceed its arming movement wins; once armed, a gesture
// never switches to the other kind.
func (g *Tracker) Move(x, y float64) State {
	if g.state == Idle {
		return Idle
	}
	g.curX, g.curY = x, y

	if g.state == Pressed {
		dx := math.Abs(x - g.startX)
		dy := math.Abs(y - g.startY)
		switch {
		case dy > dragThreshold && dy >= dx:
			g.state = Dragging
		case dx > dragThreshold && dx > dy:
			g.state = Swiping
		}
	}
	return g.state
}

// End finishes the sequence and returns the intent. The tracker resets
// to Idle (a below-threshold swipe snaps back).
func (g *Tracker) End() Intent {
	state := g.state
	dx := g.curX - g.startX
	g.state = Idle

	switch state {
	case Dragging:
		return IntentDrop
	case Swiping:
		if dx <= -swipeThreshold {
			return IntentDelete
		}
		if dx >= swipeThreshold {
			return IntentComplete
		}
	}
	return IntentNone
}

// Cancel aborts the sequence without producing an intent.
func (g *Tracker) Cancel() {
	g.state = Idle
}
