package services

import (
	"github.com/commutelog/commute-backend/internal/models"
)

// DrawHistory is the undo stack for a single in-progress drawn route. It is
// created per drawing session and discarded when drawing ends. The stack is
// seeded with a sentinel entry so its length never drops below one.
type DrawHistory struct {
	entries []models.LineString
}

// NewDrawHistory creates a history seeded with the sentinel entry
func NewDrawHistory() *DrawHistory {
	return &DrawHistory{
		entries: []models.LineString{{{0, 0}}},
	}
}

// Len returns the number of entries, including the seed
func (h *DrawHistory) Len() int {
	return len(h.entries)
}

// Push records the current vertex set. A full copy is stored so later
// mutations of the line do not rewrite history.
func (h *DrawHistory) Push(line models.LineString) {
	h.entries = append(h.entries, line.Clone())
}

// Top returns a copy of the most recent entry
func (h *DrawHistory) Top() models.LineString {
	return h.entries[len(h.entries)-1].Clone()
}

// Undo pops the most recent entry and returns the vertex set to restore.
// Undoing past the seed is a no-op that returns nil.
func (h *DrawHistory) Undo() models.LineString {
	if len(h.entries) == 1 {
		return nil
	}
	h.entries = h.entries[:len(h.entries)-1]
	return h.Top()
}
