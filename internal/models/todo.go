package models

import (
	"time"
)

// Todo represents a to-do item owned by a single user.
type Todo struct {
	TodoID        string     `firestore:"todoId" json:"todoId"`
	UserID        string     `firestore:"userId" json:"userId"`
	Name          string     `firestore:"name" json:"name"`
	Done          bool       `firestore:"done" json:"done"`
	DueDate       *time.Time `firestore:"dueDate,omitempty" json:"dueDate,omitempty"`
	AttachmentURL *string    `firestore:"attachmentUrl" json:"attachmentUrl"`
	CreatedAt     time.Time  `firestore:"createdAt" json:"createdAt"`
	Version       int64      `firestore:"version" json:"version"`
}

// CreateTodoRequest carries the caller-supplied fields for a new item.
// Everything else on Todo is assigned by the service.
type CreateTodoRequest struct {
	Name    string     `json:"name"`
	DueDate *time.Time `json:"dueDate,omitempty"`
}

// UpdateTodoRequest is a partial update; nil fields are left unchanged.
// Version, when set, is the version the caller last saw; the update is
// rejected if the stored item has moved on since.
type UpdateTodoRequest struct {
	Name    *string    `json:"name,omitempty"`
	DueDate *time.Time `json:"dueDate,omitempty"`
	Done    *bool      `json:"done,omitempty"`
	Version *int64     `json:"version,omitempty"`
}
