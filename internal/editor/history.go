package editor

import (
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/scene"
)

// History is a linear list of full scene snapshots with a cursor. Undo and
// redo move the cursor; recording after an undo drops everything past it.
type History struct {
	states []models.Scene
	index  int
}

// NewHistory starts a history whose only state is initial.
func NewHistory(initial models.Scene) *History {
	return &History{states: []models.Scene{scene.Clone(initial)}}
}

// Record truncates the redo tail and appends s unless it equals the state
// at the cursor. It reports whether a state was appended.
func (h *History) Record(s models.Scene) bool {
	h.states = h.states[:h.index+1]
	if scene.Equal(h.states[h.index], s) {
		return false
	}
	h.states = append(h.states, scene.Clone(s))
	h.index = len(h.states) - 1
	return true
}

// Undo moves the cursor back and returns the state there.
func (h *History) Undo() (models.Scene, bool) {
	if !h.CanUndo() {
		return models.Scene{}, false
	}
	h.index--
	return scene.Clone(h.states[h.index]), true
}

// Redo moves the cursor forward and returns the state there.
func (h *History) Redo() (models.Scene, bool) {
	if !h.CanRedo() {
		return models.Scene{}, false
	}
	h.index++
	return scene.Clone(h.states[h.index]), true
}

// CanUndo reports whether there is a state before the cursor.
func (h *History) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether there is a state after the cursor.
func (h *History) CanRedo() bool { return h.index < len(h.states)-1 }

// Index returns the cursor position.
func (h *History) Index() int { return h.index }

// Len returns the number of stored states.
func (h *History) Len() int { return len(h.states) }
