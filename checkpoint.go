package history

import (
	"log/slog"
)

// SaveCheckpoint stores a full copy of the present state under name and
// returns the new checkpoint. The undo and redo stacks are not affected.
func (m *Manager[T]) SaveCheckpoint(name string) Checkpoint[T] {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := Checkpoint[T]{
		ID:        m.newID(),
		Name:      name,
		CreatedAt: m.now(),
		Data:      Copy(m.present),
	}
	m.checkpoints = append(m.checkpoints, cp)

	m.logger.Debug("checkpoint saved",
		slog.String("id", cp.ID),
		slog.String("name", name),
	)
	m.m.op("checkpoint_save")
	m.persist()

	cp.Data = Copy(cp.Data)
	return cp
}

// RestoreCheckpoint makes the checkpoint's state the present state. The
// restore is an ordinary change: it can be undone and it discards the redo
// stack. Unknown IDs are ignored.
func (m *Manager[T]) RestoreCheckpoint(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.findCheckpoint(id)
	if i < 0 {
		return
	}
	m.setState(Copy(m.checkpoints[i].Data), "checkpoint_restore")
}

// DeleteCheckpoint removes a checkpoint. Unknown IDs are ignored.
func (m *Manager[T]) DeleteCheckpoint(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.findCheckpoint(id)
	if i < 0 {
		return
	}
	m.checkpoints = append(m.checkpoints[:i:i], m.checkpoints[i+1:]...)

	m.m.op("checkpoint_delete")
	m.persist()
}

// Checkpoints returns a copy of the checkpoint list, oldest first.
func (m *Manager[T]) Checkpoints() []Checkpoint[T] {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Checkpoint[T], len(m.checkpoints))
	for i, cp := range m.checkpoints {
		cp.Data = Copy(cp.Data)
		out[i] = cp
	}
	return out
}

// Checkpoint returns the checkpoint with the given ID.
func (m *Manager[T]) Checkpoint(id string) (Checkpoint[T], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.findCheckpoint(id)
	if i < 0 {
		return Checkpoint[T]{}, false
	}
	cp := m.checkpoints[i]
	cp.Data = Copy(cp.Data)
	return cp, true
}

func (m *Manager[T]) findCheckpoint(id string) int {
	for i, cp := range m.checkpoints {
		if cp.ID == id {
			return i
		}
	}
	return -1
}
