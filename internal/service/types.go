// Package service defines the backend-agnostic types and interfaces for task operations.
package service

// Task represents a single to-do item.
// ID is assigned by the server and never generated client-side.
type Task struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Completed   bool   `json:"completed"`
}

// Draft is the input for creating a task.
type Draft struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	Completed   bool   `json:"completed"`
}

// Patch is the input for updating a task.
// A nil field is omitted from the request; a non-nil field is sent even
// when it points at the zero value, so a field can be cleared.
type Patch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.DueDate == nil && p.Completed == nil
}

// Apply returns a copy of t with the patch's set fields applied.
func (p Patch) Apply(t Task) Task {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}

// String returns a pointer to s, for building patches.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for building patches.
func Bool(b bool) *bool { return &b }

// TaskList is the response body shared by list, create and update.
type TaskList struct {
	Tasks []Task `json:"tasks"`
}

// LoginRequest is the body of a login call.
type LoginRequest struct {
	Email string `json:"email"`
}
