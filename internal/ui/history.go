package ui

import "github.com/piwi3910/PrintCost/internal/model"

const defaultMaxDepth = 50

// Snapshot is a copy of the job inputs taken before an edit.
type Snapshot struct {
	Job   model.JobSpec
	Label string // edit that followed, e.g. "Change Colors"
}

// MakeSnapshot copies job so later edits to it cannot reach the snapshot.
func MakeSnapshot(job model.JobSpec, label string) Snapshot {
	return Snapshot{Job: copyJob(job), Label: label}
}

// copyJob duplicates the pointer-held custom paper and plate values.
func copyJob(job model.JobSpec) model.JobSpec {
	out := job
	if c := job.Paper.Custom; c != nil {
		dims := *c
		out.Paper.Custom = &dims
	}
	if c := job.Plate.Custom; c != nil {
		cost := *c
		out.Plate.Custom = &cost
	}
	return out
}

type snapshotStack []Snapshot

func (s *snapshotStack) push(snap Snapshot) { *s = append(*s, snap) }

func (s *snapshotStack) pop() (Snapshot, bool) {
	n := len(*s)
	if n == 0 {
		return Snapshot{}, false
	}
	top := (*s)[n-1]
	*s = (*s)[:n-1]
	return top, true
}

func (s snapshotStack) peekLabel() string {
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1].Label
}

// History is a bounded undo/redo log of job edits.
type History struct {
	undoStack snapshotStack
	redoStack snapshotStack
	maxDepth  int
}

// NewHistory returns an empty history keeping up to 50 undo steps.
func NewHistory() *History {
	return &History{maxDepth: defaultMaxDepth}
}

// Push records the state before an edit. Any redo steps are discarded and
// the oldest undo step is dropped once maxDepth is exceeded.
func (h *History) Push(s Snapshot) {
	h.undoStack.push(s)
	if extra := len(h.undoStack) - h.maxDepth; extra > 0 {
		h.undoStack = h.undoStack[extra:]
	}
	h.redoStack = nil
}

// Undo returns the state to restore and parks current on the redo stack.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	s, ok := h.undoStack.pop()
	if ok {
		h.redoStack.push(current)
	}
	return s, ok
}

// Redo is the inverse of Undo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	s, ok := h.redoStack.pop()
	if ok {
		h.undoStack.push(current)
	}
	return s, ok
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// UndoLabel names the edit Undo would revert, or "" when there is none.
func (h *History) UndoLabel() string { return h.undoStack.peekLabel() }

// RedoLabel names the state Redo would bring back, or "".
func (h *History) RedoLabel() string { return h.redoStack.peekLabel() }

// Clear drops every undo and redo step.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}
