// Package tasks holds the task model and the in-memory store that owns it.
package tasks

// Task is a single to-do entry.
type Task struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// SeedTask is the task every default store starts with.
var SeedTask = Task{ID: 1, Title: "Buy groceries"}
