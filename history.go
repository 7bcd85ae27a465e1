// Package history keeps an editable application state together with a
// bounded undo stack, a redo stack and named checkpoints, and persists all of
// it to a key-value store after every change.
//
// Undo and redo steps are stored as reverse patches over the JSON form of the
// state rather than as full copies, so a long history of small edits to a
// large document stays small. Checkpoints are full copies.
package history

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Mayur-Pagote/README-Design-Kit-sub001/internal/core"
	"github.com/Mayur-Pagote/README-Design-Kit-sub001/patch"
	"github.com/Mayur-Pagote/README-Design-Kit-sub001/storage"
)

// Checkpoint is a named full copy of the state.
type Checkpoint[T any] struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Data      T         `json:"data"`
}

// Timeline is the persisted form of the undo and redo stacks and the
// checkpoint list.
//
// Past holds undo patches, most recent last. Future holds redo patches, most
// recently undone first.
type Timeline[T any] struct {
	Past        []patch.Patch   `json:"past"`
	Future      []patch.Patch   `json:"future"`
	Checkpoints []Checkpoint[T] `json:"checkpoints"`
}

// PresentKey returns the storage key holding the present state for key.
func PresentKey(key string) string { return key + "-present" }

// HistoryKey returns the storage key holding the Timeline for key.
func HistoryKey(key string) string { return key + "-history" }

// Manager owns the present state of type T and its history. T must be
// serializable with encoding/json; equality and diffs are computed on the
// serialized form.
//
// None of the methods return errors. Storage failures are logged and do not
// roll back the in-memory change, and operations with nothing to do (undo
// with an empty past, unknown checkpoint IDs) are silently ignored.
type Manager[T any] struct {
	mu sync.Mutex

	key    string
	store  storage.Store
	max    int
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
	m      *Metrics

	present T
	tree    any

	past        []patch.Patch
	future      []patch.Patch
	checkpoints []Checkpoint[T]
}

// New returns a Manager for key. The present state is loaded from the store
// if it holds one, and is initial otherwise. History is loaded likewise and
// starts empty when absent.
func New[T any](key string, initial T, opts ...Option) *Manager[T] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt.apply(cfg)
	}
	if cfg.store == nil {
		cfg.store = storage.NewMemory()
	}

	m := &Manager[T]{
		key:     key,
		store:   cfg.store,
		max:     cfg.maxHistory,
		logger:  cfg.logger.With(slog.String("component", "history"), slog.String("key", key)),
		now:     cfg.now,
		newID:   cfg.newID,
		m:       cfg.metrics,
		present: initial,
	}
	m.load()
	m.m.depths(len(m.past), len(m.future), len(m.checkpoints))
	return m
}

func (m *Manager[T]) load() {
	var saved T
	ok, err := storage.Load(m.store, PresentKey(m.key), &saved)
	if err != nil {
		m.m.storageError("read")
		m.logger.Warn("failed to load present state, using initial value",
			slog.String("error", err.Error()),
		)
	}
	if ok {
		m.present = saved
	}

	tree, err := core.ToTree(m.present)
	if err != nil {
		m.logger.Error("present state is not serializable",
			slog.String("error", err.Error()),
		)
	}
	m.tree = tree

	var tl Timeline[T]
	ok, err = storage.Load(m.store, HistoryKey(m.key), &tl)
	if err != nil {
		m.m.storageError("read")
		m.logger.Warn("failed to load history, starting empty",
			slog.String("error", err.Error()),
		)
	}
	if ok {
		m.past = tl.Past
		m.future = tl.Future
		m.checkpoints = tl.Checkpoints
		m.trim()
	}
}

// Key returns the key the manager persists under.
func (m *Manager[T]) Key() string {
	return m.key
}

// State returns a copy of the present state.
func (m *Manager[T]) State() T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return core.Copy(m.present)
}

// SetState replaces the present state with v. If v is equal to the present
// state nothing is recorded and nothing is written. Otherwise the change
// becomes undoable and the redo stack is discarded.
func (m *Manager[T]) SetState(v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setState(core.Copy(v), "set")
}

// UpdateState calls fn with a copy of the present state and applies its
// result as SetState would. fn runs without the manager's lock held.
func (m *Manager[T]) UpdateState(fn func(T) T) {
	m.SetState(fn(m.State()))
}

func (m *Manager[T]) setState(v T, op string) {
	tree, err := core.ToTree(v)
	if err != nil {
		m.logger.Error("ignoring state that is not serializable",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
		return
	}

	// The undo patch is empty exactly when both serialize the same.
	undo := patch.Diff(tree, m.tree)
	if undo.Empty() {
		return
	}

	m.past = append(m.past, undo)
	m.trim()
	m.future = nil
	m.present = v
	m.tree = tree

	m.m.op(op)
	m.persist()
}

// Undo moves back one step. It does nothing if there is nothing to undo.
func (m *Manager[T]) Undo() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.past) == 0 {
		return
	}
	last := len(m.past) - 1
	undo := m.past[last]
	m.past = m.past[:last]

	prevTree, prev, ok := m.step(undo, "undo")
	if !ok {
		m.persist()
		return
	}

	redo := patch.Diff(prevTree, m.tree)
	m.future = append([]patch.Patch{redo}, m.future...)
	m.present = prev
	m.tree = prevTree

	m.m.op("undo")
	m.persist()
}

// Redo moves forward one step. It does nothing if there is nothing to redo.
func (m *Manager[T]) Redo() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.future) == 0 {
		return
	}
	redo := m.future[0]
	m.future = m.future[1:]

	nextTree, next, ok := m.step(redo, "redo")
	if !ok {
		m.persist()
		return
	}

	undo := patch.Diff(nextTree, m.tree)
	m.past = append(m.past, undo)
	m.trim()
	m.present = next
	m.tree = nextTree

	m.m.op("redo")
	m.persist()
}

// step applies p to the present tree. A patch that does not apply can only
// come from corrupted persisted history; it is dropped and reported.
func (m *Manager[T]) step(p patch.Patch, op string) (any, T, bool) {
	var zero T

	tree, err := p.Apply(m.tree)
	if err != nil {
		m.logger.Error("dropping history entry that does not apply",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
		return nil, zero, false
	}

	v, err := core.FromTree[T](tree)
	if err != nil {
		m.logger.Error("dropping history entry that does not decode",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
		return nil, zero, false
	}
	return tree, v, true
}

// CanUndo reports whether Undo would change the state.
func (m *Manager[T]) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.past) > 0
}

// CanRedo reports whether Redo would change the state.
func (m *Manager[T]) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.future) > 0
}

// UndoDepth returns the number of available undo steps.
func (m *Manager[T]) UndoDepth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.past)
}

// RedoDepth returns the number of available redo steps.
func (m *Manager[T]) RedoDepth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.future)
}

// Timeline returns a copy of the undo and redo stacks and the checkpoints.
func (m *Manager[T]) Timeline() Timeline[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return core.Copy(m.timeline())
}

// ClearHistory drops every undo and redo step. Checkpoints are kept.
func (m *Manager[T]) ClearHistory() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.past) == 0 && len(m.future) == 0 {
		return
	}
	m.past = nil
	m.future = nil

	m.m.op("clear")
	m.persist()
}

func (m *Manager[T]) timeline() Timeline[T] {
	return Timeline[T]{
		Past:        m.past,
		Future:      m.future,
		Checkpoints: m.checkpoints,
	}
}

// trim evicts the oldest undo steps beyond the limit.
func (m *Manager[T]) trim() {
	if over := len(m.past) - m.max; over > 0 {
		m.past = append([]patch.Patch(nil), m.past[over:]...)
	}
}

// persist writes present state and history. The two writes are independent;
// a failure of either is logged and the in-memory state stays authoritative.
func (m *Manager[T]) persist() {
	m.m.depths(len(m.past), len(m.future), len(m.checkpoints))

	if err := storage.Save(m.store, PresentKey(m.key), m.present); err != nil {
		m.m.storageError("write")
		m.logger.Warn("failed to persist present state",
			slog.String("error", err.Error()),
		)
	}
	if err := storage.Save(m.store, HistoryKey(m.key), m.timeline()); err != nil {
		m.m.storageError("write")
		m.logger.Warn("failed to persist history",
			slog.Int("past", len(m.past)),
			slog.Int("future", len(m.future)),
			slog.String("error", err.Error()),
		)
	}
}
