package arbiter

import "context"

// MemoryGroup is an in-process arbiter factory for tests. All arbiters
// issued by one group contend for the same slot, mirroring how separate
// processes contend for the queue directory.
type MemoryGroup struct {
	slot chan struct{}
}

// NewMemoryGroup creates a group with a single free slot.
func NewMemoryGroup() *MemoryGroup {
	g := &MemoryGroup{slot: make(chan struct{}, 1)}
	g.slot <- struct{}{}
	return g
}

// Arbiter issues a new arbiter contending within this group.
func (g *MemoryGroup) Arbiter() *Memory {
	return &Memory{group: g}
}

// Memory is a single in-process participant of a MemoryGroup.
type Memory struct {
	group *MemoryGroup
	held  bool
}

// Acquire takes the group's slot or fails with the context.
func (m *Memory) Acquire(ctx context.Context) error {
	select {
	case <-m.group.slot:
		m.held = true
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns the slot to the group.
func (m *Memory) Release() error {
	if !m.held {
		return ErrNotHeld
	}
	m.held = false
	m.group.slot <- struct{}{}
	return nil
}
