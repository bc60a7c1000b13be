package tasks

import "context"

// Store defines the storage interface for tasks.
//
// Implementations own the task sequence. List returns tasks in insertion
// order and Create assigns the next sequential ID.
type Store interface {
	List(ctx context.Context) ([]Task, error)
	Create(ctx context.Context, title string) (Task, error)
}
