package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lumberjack/internal/games/lumberjack"
)

// swipeKind is the pointer phase a mouse event maps to.
type swipeKind uint8

const (
	swipeNone swipeKind = iota
	swipeStart
	swipeMove
	swipeEnd
)

// swipeEvent is a mouse event in play-area coordinates.
type swipeEvent struct {
	Kind swipeKind
	X, Y float64
}

// mouseToSwipe maps a terminal mouse event onto the play area. A left press
// starts a swipe, drag motion extends it and any release ends it. Drags that
// wander over the HUD are pinned to the field edge.
func mouseToSwipe(vp lumberjack.Viewport, msg tea.MouseMsg) swipeEvent {
	if !vp.Valid() {
		return swipeEvent{}
	}

	var kind swipeKind
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return swipeEvent{}
		}
		kind = swipeStart
	case tea.MouseActionMotion:
		kind = swipeMove
	case tea.MouseActionRelease:
		return swipeEvent{Kind: swipeEnd}
	default:
		return swipeEvent{}
	}

	col, row := vp.ClampCell(msg.X, msg.Y)
	x, y, ok := vp.ToLogical(col, row)
	if !ok {
		return swipeEvent{}
	}
	return swipeEvent{Kind: kind, X: x, Y: y}
}

// applySwipe forwards a mapped event to the game.
func applySwipe(g Pointer, ev swipeEvent) {
	switch ev.Kind {
	case swipeStart:
		g.HandleSwipeStart(ev.X, ev.Y)
	case swipeMove:
		g.HandleSwipeMove(ev.X, ev.Y)
	case swipeEnd:
		g.HandleSwipeEnd()
	}
}
