package tasks

import (
	"context"
	"sync"
)

// MemoryStore keeps tasks in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	tasks  []Task
	lastID int
}

// NewMemoryStore creates a store holding only SeedTask.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWith([]Task{SeedTask})
}

// NewMemoryStoreWith creates a store pre-populated with seed, in order.
// The ID counter starts at the highest seed ID.
func NewMemoryStoreWith(seed []Task) *MemoryStore {
	s := &MemoryStore{tasks: make([]Task, 0, len(seed))}
	for _, t := range seed {
		s.tasks = append(s.tasks, t)
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	return s
}

// List returns a copy of all tasks in insertion order. The result is never nil.
func (s *MemoryStore) List(ctx context.Context) ([]Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

// Create appends a task with the next ID and returns it.
// The title is stored as given; callers validate it.
func (s *MemoryStore) Create(ctx context.Context, title string) (Task, error) {
	if err := ctx.Err(); err != nil {
		return Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	t := Task{ID: s.lastID, Title: title}
	s.tasks = append(s.tasks, t)
	return t, nil
}

// Len returns the number of stored tasks.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

var _ Store = (*MemoryStore)(nil)
