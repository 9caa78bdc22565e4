package ui

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/PrintCost/internal/model"
)

// jobWithUnits returns the default job with the given order quantity.
func jobWithUnits(units int) model.JobSpec {
	job := model.DefaultAppConfig().NewJobSpec()
	job.TotalUnits = units
	return job
}

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if h.CanRedo() {
		t.Error("new history should not be redoable")
	}
}

func TestPushAndUndo(t *testing.T) {
	h := NewHistory()

	// Push initial state (before changing the quantity)
	h.Push(MakeSnapshot(jobWithUnits(1000), "initial"))

	if !h.CanUndo() {
		t.Fatal("should be able to undo after push")
	}

	current := MakeSnapshot(jobWithUnits(2000), "current")

	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("undo should succeed")
	}
	if restored.Job.TotalUnits != 1000 {
		t.Errorf("expected 1000 units after undo, got %d", restored.Job.TotalUnits)
	}
	if restored.Label != "initial" {
		t.Errorf("expected label 'initial', got %q", restored.Label)
	}
}

func TestUndoRedo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(jobWithUnits(100), "100"))
	h.Push(MakeSnapshot(jobWithUnits(200), "200"))
	current := MakeSnapshot(jobWithUnits(300), "300")

	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("first undo should succeed")
	}
	if restored.Job.TotalUnits != 200 {
		t.Errorf("expected 200 units, got %d", restored.Job.TotalUnits)
	}

	if !h.CanRedo() {
		t.Fatal("should be able to redo")
	}
	redone, ok := h.Redo(restored)
	if !ok {
		t.Fatal("redo should succeed")
	}
	if redone.Job.TotalUnits != 300 {
		t.Errorf("expected 300 units after redo, got %d", redone.Job.TotalUnits)
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(jobWithUnits(100), "100"))

	if _, ok := h.Undo(MakeSnapshot(jobWithUnits(200), "200")); !ok {
		t.Fatal("undo should succeed")
	}
	if !h.CanRedo() {
		t.Fatal("should be able to redo after undo")
	}

	// Push new state - should clear redo
	h.Push(MakeSnapshot(jobWithUnits(150), "new action"))
	if h.CanRedo() {
		t.Error("redo stack should be cleared after push")
	}
}

func TestMaxDepth(t *testing.T) {
	h := &History{maxDepth: 3}

	for i := 0; i < 5; i++ {
		h.Push(MakeSnapshot(jobWithUnits(i+1), ""))
	}

	if len(h.undoStack) != 3 {
		t.Errorf("expected undo stack length 3, got %d", len(h.undoStack))
	}
	// Oldest entries are dropped first
	if h.undoStack[0].Job.TotalUnits != 3 {
		t.Errorf("expected oldest kept snapshot to have 3 units, got %d", h.undoStack[0].Job.TotalUnits)
	}
}

func TestUndoRedoEmpty(t *testing.T) {
	h := NewHistory()
	current := MakeSnapshot(jobWithUnits(1), "current")
	if _, ok := h.Undo(current); ok {
		t.Error("undo on empty history should return false")
	}
	if _, ok := h.Redo(current); ok {
		t.Error("redo on empty history should return false")
	}
}

func TestClear(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(jobWithUnits(1), "a"))
	h.Push(MakeSnapshot(jobWithUnits(2), "b"))
	h.Undo(MakeSnapshot(jobWithUnits(3), "current"))

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("after clear, should not be able to undo or redo")
	}
}

func TestSnapshotDeepCopiesCustomChoices(t *testing.T) {
	job := jobWithUnits(500)
	job.Paper = model.CustomPaper(8, 10)
	job.Plate = model.CustomPlate(decimal.NewFromInt(120))

	snap := MakeSnapshot(job, "custom")

	// Mutate the original custom values in place
	job.Paper.Custom.Width = 99
	*job.Plate.Custom = decimal.NewFromInt(1)

	if snap.Job.Paper.Custom.Width != 8 {
		t.Errorf("snapshot paper should be independent of original, got width %g", snap.Job.Paper.Custom.Width)
	}
	if !snap.Job.Plate.Custom.Equal(decimal.NewFromInt(120)) {
		t.Errorf("snapshot plate should be independent of original, got %s", snap.Job.Plate.Custom)
	}
}

func TestSnapshotPresetChoicesStayNil(t *testing.T) {
	snap := MakeSnapshot(jobWithUnits(1), "preset")
	if snap.Job.Paper.Custom != nil {
		t.Error("preset paper should keep a nil custom size")
	}
	if snap.Job.Plate.Custom != nil {
		t.Error("preset plate should keep a nil custom cost")
	}
}

func TestMultipleUndoRedo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(jobWithUnits(1), "1"))
	h.Push(MakeSnapshot(jobWithUnits(2), "2"))
	h.Push(MakeSnapshot(jobWithUnits(3), "3"))
	s := MakeSnapshot(jobWithUnits(4), "4")

	for _, want := range []int{3, 2, 1} {
		var ok bool
		s, ok = h.Undo(s)
		if !ok || s.Job.TotalUnits != want {
			t.Fatalf("undo: expected %d units, got %d", want, s.Job.TotalUnits)
		}
	}
	if h.CanUndo() {
		t.Error("should not be able to undo further")
	}

	for _, want := range []int{2, 3, 4} {
		var ok bool
		s, ok = h.Redo(s)
		if !ok || s.Job.TotalUnits != want {
			t.Fatalf("redo: expected %d units, got %d", want, s.Job.TotalUnits)
		}
	}
	if h.CanRedo() {
		t.Error("should not be able to redo further")
	}
}

func TestUndoRedoLabels(t *testing.T) {
	h := NewHistory()
	if h.UndoLabel() != "" || h.RedoLabel() != "" {
		t.Fatal("empty history should have no labels")
	}

	h.Push(MakeSnapshot(jobWithUnits(100), "Change Quantity"))
	if got := h.UndoLabel(); got != "Change Quantity" {
		t.Errorf("expected undo label 'Change Quantity', got %q", got)
	}

	current := MakeSnapshot(jobWithUnits(200), h.UndoLabel())
	if _, ok := h.Undo(current); !ok {
		t.Fatal("undo should succeed")
	}
	if got := h.RedoLabel(); got != "Change Quantity" {
		t.Errorf("expected redo label 'Change Quantity', got %q", got)
	}
	if h.UndoLabel() != "" {
		t.Errorf("expected no undo label, got %q", h.UndoLabel())
	}
}
