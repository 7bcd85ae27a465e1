package history

import (
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/Mayur-Pagote/README-Design-Kit-sub001/internal/testmodels"
	"github.com/Mayur-Pagote/README-Design-Kit-sub001/storage"
)

type counter struct {
	Count int `json:"count"`
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingStore counts writes so tests can tell whether an operation
// persisted anything.
type countingStore struct {
	storage.Store
	sets int
}

func (c *countingStore) Set(key string, data []byte) error {
	c.sets++
	return c.Store.Set(key, data)
}

type failingStore struct {
	storage.Store
}

func (failingStore) Set(string, []byte) error {
	return errors.New("disk on fire")
}

func newCounter(t *testing.T, opts ...Option) *Manager[counter] {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return New("test", counter{Count: 0}, opts...)
}

func TestManager_UndoRedoScenario(t *testing.T) {
	m := newCounter(t)

	m.SetState(counter{Count: 1})
	m.SetState(counter{Count: 2})
	if !m.CanUndo() {
		t.Fatal("expected CanUndo after two changes")
	}

	steps := []struct {
		op   func()
		want int
	}{
		{m.Undo, 1},
		{m.Undo, 0},
		{m.Redo, 1},
		{m.Redo, 2},
	}
	for i, s := range steps {
		s.op()
		if got := m.State().Count; got != s.want {
			t.Fatalf("step %d: count = %d, want %d", i, got, s.want)
		}
		if i == 1 && m.CanUndo() {
			t.Error("CanUndo after undoing everything")
		}
	}

	if m.CanRedo() {
		t.Error("CanRedo after redoing everything")
	}
}

func TestManager_UndoRedoEmptyIsNoOp(t *testing.T) {
	cs := &countingStore{Store: storage.NewMemory()}
	m := newCounter(t, WithStore(cs))

	m.Undo()
	m.Redo()

	if got := m.State().Count; got != 0 {
		t.Errorf("count = %d, want 0", got)
	}
	if cs.sets != 0 {
		t.Errorf("no-op undo/redo wrote %d times", cs.sets)
	}
}

func TestManager_NoOpSetState(t *testing.T) {
	cs := &countingStore{Store: storage.NewMemory()}
	m := newCounter(t, WithStore(cs))

	m.SetState(counter{Count: 1})
	m.SetState(counter{Count: 2})
	m.Undo()
	writes := cs.sets

	m.SetState(counter{Count: 1})

	if m.UndoDepth() != 1 || m.RedoDepth() != 1 {
		t.Errorf("depths = %d/%d, want 1/1", m.UndoDepth(), m.RedoDepth())
	}
	if got := m.State().Count; got != 1 {
		t.Errorf("count = %d, want 1", got)
	}
	if cs.sets != writes {
		t.Errorf("no-op SetState wrote %d times", cs.sets-writes)
	}
}

func TestManager_BranchDiscard(t *testing.T) {
	m := newCounter(t)

	m.SetState(counter{Count: 1})
	m.SetState(counter{Count: 2})
	m.Undo()
	if !m.CanRedo() {
		t.Fatal("expected CanRedo after undo")
	}

	m.SetState(counter{Count: 10})
	if m.CanRedo() {
		t.Error("redo stack survived a new change")
	}
	m.Redo()
	if got := m.State().Count; got != 10 {
		t.Errorf("count = %d, want 10", got)
	}

	m.Undo()
	if got := m.State().Count; got != 1 {
		t.Errorf("after undo count = %d, want 1", got)
	}
}

func TestManager_BoundedHistory(t *testing.T) {
	m := newCounter(t)

	n := DefaultMaxHistory + 5
	for i := 1; i <= n; i++ {
		m.SetState(counter{Count: i})
	}
	if got := m.UndoDepth(); got != DefaultMaxHistory {
		t.Fatalf("UndoDepth = %d, want %d", got, DefaultMaxHistory)
	}

	for m.CanUndo() {
		m.Undo()
	}
	// Only the most recent transitions are undoable.
	if got := m.State().Count; got != 5 {
		t.Errorf("oldest reachable count = %d, want 5", got)
	}
	if got := m.RedoDepth(); got != DefaultMaxHistory {
		t.Errorf("RedoDepth = %d, want %d", got, DefaultMaxHistory)
	}
}

func TestManager_WithMaxHistory(t *testing.T) {
	m := newCounter(t, WithMaxHistory(3))
	for i := 1; i <= 10; i++ {
		m.SetState(counter{Count: i})
	}
	if got := m.UndoDepth(); got != 3 {
		t.Errorf("UndoDepth = %d, want 3", got)
	}

	m = newCounter(t, WithMaxHistory(0))
	for i := 1; i <= DefaultMaxHistory+1; i++ {
		m.SetState(counter{Count: i})
	}
	if got := m.UndoDepth(); got != DefaultMaxHistory {
		t.Errorf("WithMaxHistory(0) UndoDepth = %d, want %d", got, DefaultMaxHistory)
	}
}

func TestManager_RedoAfterEvictionStaysBounded(t *testing.T) {
	m := newCounter(t, WithMaxHistory(2))
	for i := 1; i <= 4; i++ {
		m.SetState(counter{Count: i})
	}
	m.Undo()
	m.Undo()
	m.Redo()
	m.Redo()
	if got := m.UndoDepth(); got != 2 {
		t.Errorf("UndoDepth = %d, want 2", got)
	}
	if got := m.State().Count; got != 4 {
		t.Errorf("count = %d, want 4", got)
	}
}

func TestManager_InverseLaw(t *testing.T) {
	doc := testmodels.NewDocument("readme-kit")
	m := New("doc", doc, WithLogger(quietLogger()))

	states := []testmodels.Document{doc}
	edit := func(fn func(d *testmodels.Document)) {
		next := Copy(states[len(states)-1])
		fn(&next)
		states = append(states, next)
		m.SetState(next)
	}

	edit(func(d *testmodels.Document) { d.Elements[0].Content = "README Kit" })
	edit(func(d *testmodels.Document) { *d = d.Append(testmodels.Paragraph(1)) })
	edit(func(d *testmodels.Document) { *d = d.Append(testmodels.Paragraph(2)) })
	edit(func(d *testmodels.Document) {
		d.Elements[1], d.Elements[2] = d.Elements[2], d.Elements[1]
	})
	edit(func(d *testmodels.Document) { d.Elements = d.Elements[1:] })
	edit(func(d *testmodels.Document) { d.Variables["license"] = "MIT" })
	edit(func(d *testmodels.Document) { d.Elements[0].Items = []string{"a", "b"} })
	edit(func(d *testmodels.Document) { d.Variables = nil })
	edit(func(d *testmodels.Document) { d.Elements = nil })

	n := len(states) - 1
	for i := n; i > 0; i-- {
		m.Undo()
		if got := m.State(); !Equal(got, states[i-1]) {
			t.Fatalf("undo to state %d:\n got %+v\nwant %+v", i-1, got, states[i-1])
		}
	}
	if m.CanUndo() {
		t.Error("CanUndo at initial state")
	}

	for i := 1; i <= n; i++ {
		m.Redo()
		if got := m.State(); !Equal(got, states[i]) {
			t.Fatalf("redo to state %d:\n got %+v\nwant %+v", i, got, states[i])
		}
	}
	if m.CanRedo() {
		t.Error("CanRedo at final state")
	}
}

func TestManager_UpdateState(t *testing.T) {
	m := newCounter(t)

	m.UpdateState(func(c counter) counter {
		c.Count += 5
		return c
	})
	m.UpdateState(func(c counter) counter { return c })

	if got := m.State().Count; got != 5 {
		t.Errorf("count = %d, want 5", got)
	}
	if got := m.UndoDepth(); got != 1 {
		t.Errorf("UndoDepth = %d, want 1", got)
	}
}

func TestManager_UpdateStateMayReadManager(t *testing.T) {
	m := newCounter(t)
	m.UpdateState(func(c counter) counter {
		// Must not deadlock.
		c.Count = m.UndoDepth() + 1
		return c
	})
	if got := m.State().Count; got != 1 {
		t.Errorf("count = %d, want 1", got)
	}
}

func TestManager_StateIsCopy(t *testing.T) {
	doc := testmodels.NewDocument("x")
	m := New("doc", doc, WithLogger(quietLogger()))

	got := m.State()
	got.Elements[0].Content = "mutated"
	got.Variables["projectName"] = "mutated"

	if s := m.State(); s.Elements[0].Content != "x" || s.Variables["projectName"] != "x" {
		t.Errorf("present state changed through State(): %+v", s)
	}

	// Mutating a value after handing it to SetState must not leak in either.
	next := testmodels.NewDocument("y")
	m.SetState(next)
	next.Elements[0].Content = "mutated"
	if s := m.State(); s.Elements[0].Content != "y" {
		t.Errorf("present state changed through SetState argument: %+v", s)
	}
}

func TestManager_UnserializableStateIgnored(t *testing.T) {
	type weird struct {
		F any `json:"f"`
	}
	m := New("w", weird{F: 1}, WithLogger(quietLogger()))

	m.SetState(weird{F: make(chan int)})
	if m.CanUndo() {
		t.Error("unserializable state was recorded")
	}
	if got := m.State().F; got != 1 {
		t.Errorf("state = %v, want 1", got)
	}
}

func TestManager_ClearHistory(t *testing.T) {
	m := newCounter(t)
	m.SetState(counter{Count: 1})
	m.SetState(counter{Count: 2})
	m.Undo()
	cp := m.SaveCheckpoint("keep")

	m.ClearHistory()

	if m.CanUndo() || m.CanRedo() {
		t.Error("stacks not cleared")
	}
	if got := m.State().Count; got != 1 {
		t.Errorf("count = %d, want 1", got)
	}
	if cps := m.Checkpoints(); len(cps) != 1 || cps[0].ID != cp.ID {
		t.Errorf("checkpoints = %+v", cps)
	}
}

func TestManager_Timeline(t *testing.T) {
	m := newCounter(t)
	m.SetState(counter{Count: 1})
	m.SetState(counter{Count: 2})
	m.Undo()

	tl := m.Timeline()
	if len(tl.Past) != 1 || len(tl.Future) != 1 {
		t.Fatalf("timeline = %d past, %d future", len(tl.Past), len(tl.Future))
	}
	if got := tl.Past[0].String(); got != "~ /count: 1 -> 0" {
		t.Errorf("undo patch = %q", got)
	}
	if got := tl.Future[0].String(); got != "~ /count: 1 -> 2" {
		t.Errorf("redo patch = %q", got)
	}

	// The copy is detached from the manager.
	tl.Past[0] = nil
	if m.Timeline().Past[0] == nil {
		t.Error("Timeline returned shared slices")
	}
}

func TestManager_ManyEdits(t *testing.T) {
	m := New("doc", testmodels.NewDocument("t"), WithLogger(quietLogger()), WithMaxHistory(1000))
	for i := 0; i < 200; i++ {
		m.UpdateState(func(d testmodels.Document) testmodels.Document {
			if i%3 == 2 && len(d.Elements) > 2 {
				d.Elements = d.Elements[:len(d.Elements)-1]
				return d
			}
			return d.Append(testmodels.Paragraph(i))
		})
	}
	final := m.State()

	for m.CanUndo() {
		m.Undo()
	}
	if want := testmodels.NewDocument("t"); !reflect.DeepEqual(m.State(), want) {
		t.Fatalf("initial state not restored: %+v", m.State())
	}
	for m.CanRedo() {
		m.Redo()
	}
	if !Equal(m.State(), final) {
		t.Fatalf("final state not restored: %d elements", len(m.State().Elements))
	}
}

func TestManager_NullRoot(t *testing.T) {
	store := storage.NewMemory()
	m := New[any]("null", nil, WithStore(store), WithLogger(quietLogger()))
	if m.State() != nil {
		t.Fatalf("initial state = %#v", m.State())
	}

	m.SetState(map[string]any{"a": 1.0})
	m.Undo()
	if got := m.State(); got != nil {
		t.Fatalf("after undo state = %#v, want nil", got)
	}

	m.Redo()
	want := map[string]any{"a": 1.0}
	if got := m.State(); !reflect.DeepEqual(got, want) {
		t.Fatalf("after redo state = %#v, want %#v", got, want)
	}

	m.SetState(nil)
	if m.State() != nil || m.UndoDepth() != 2 {
		t.Fatalf("state = %#v, undo depth = %d", m.State(), m.UndoDepth())
	}

	reloaded := New[any]("null", map[string]any{"ignored": true}, WithStore(store), WithLogger(quietLogger()))
	if reloaded.State() != nil || reloaded.UndoDepth() != 2 {
		t.Fatalf("reloaded state = %#v, undo depth = %d", reloaded.State(), reloaded.UndoDepth())
	}
	reloaded.Undo()
	if got := reloaded.State(); !reflect.DeepEqual(got, want) {
		t.Errorf("reloaded undo state = %#v, want %#v", got, want)
	}
}

func TestManager_NullCheckpoint(t *testing.T) {
	m := New[any]("null", nil, WithLogger(quietLogger()))
	cp := m.SaveCheckpoint("empty")
	if cp.Data != nil {
		t.Fatalf("checkpoint data = %#v", cp.Data)
	}
	if got, ok := m.Checkpoint(cp.ID); !ok || got.Data != nil {
		t.Fatalf("Checkpoint(%q) = %#v, %v", cp.ID, got, ok)
	}
	if got := m.Checkpoints(); len(got) != 1 || got[0].Data != nil {
		t.Fatalf("Checkpoints() = %#v", got)
	}

	m.SetState([]any{"x"})
	m.RestoreCheckpoint(cp.ID)
	if m.State() != nil {
		t.Fatalf("restored state = %#v", m.State())
	}
	m.Undo()
	if got := m.State(); !reflect.DeepEqual(got, []any{"x"}) {
		t.Errorf("undo restore state = %#v", got)
	}
}
