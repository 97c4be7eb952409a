package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ytakahashi/todo-api/internal/models"
)

// ItemStore persists to-do items keyed by todoId, with a secondary
// access pattern by owner. Absence on GetByID is (nil, nil), not an
// error; existence checks belong to the caller.
type ItemStore interface {
	ListByOwner(ctx context.Context, userID string) ([]*models.Todo, error)
	GetByID(ctx context.Context, todoID string) (*models.Todo, error)
	Create(ctx context.Context, todo *models.Todo) error
	Update(ctx context.Context, todoID string, patch models.UpdateTodoRequest) error
	Delete(ctx context.Context, todoID string) error
	SetAttachmentURL(ctx context.Context, todoID, url string) error
}

// AttachmentStore issues URLs for uploading and retrieving attachment
// blobs. Identifiers are opaque and supplied by the caller.
type AttachmentStore interface {
	UploadURL(attachmentID string) (string, error)
	RetrievalURL(attachmentID string) (string, error)
}

// TodoService enforces per-user ownership on top of the two stores.
// Every operation takes the authenticated user ID explicitly; nothing
// is ever trusted from the request body.
type TodoService struct {
	items       ItemStore
	attachments AttachmentStore
}

func NewTodoService(items ItemStore, attachments AttachmentStore) *TodoService {
	return &TodoService{
		items:       items,
		attachments: attachments,
	}
}

// ListTodos returns every item owned by userID, empty slice if none.
func (s *TodoService) ListTodos(ctx context.Context, userID string) ([]*models.Todo, error) {
	return s.items.ListByOwner(ctx, userID)
}

// CreateTodo persists a new item for userID and returns it. The name is
// required; whitespace-only names are rejected.
func (s *TodoService) CreateTodo(ctx context.Context, userID string, req models.CreateTodoRequest) (*models.Todo, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	todo := &models.Todo{
		TodoID:    uuid.New().String(),
		UserID:    userID,
		Name:      req.Name,
		Done:      false,
		DueDate:   req.DueDate,
		CreatedAt: time.Now().UTC(),
		Version:   1,
	}

	if err := s.items.Create(ctx, todo); err != nil {
		return nil, err
	}

	return todo, nil
}

// UpdateTodo applies a partial update to an item owned by userID.
func (s *TodoService) UpdateTodo(ctx context.Context, userID, todoID string, patch models.UpdateTodoRequest) error {
	if _, err := s.ownedTodo(ctx, userID, todoID, patch.Version); err != nil {
		return err
	}
	return s.items.Update(ctx, todoID, patch)
}

// DeleteTodo removes an item owned by userID. A second delete of the
// same id reports ErrTodoNotFound.
func (s *TodoService) DeleteTodo(ctx context.Context, userID, todoID string, expectedVersion *int64) error {
	if _, err := s.ownedTodo(ctx, userID, todoID, expectedVersion); err != nil {
		return err
	}
	return s.items.Delete(ctx, todoID)
}

// AttachTodo records the retrieval URL for attachmentID on the item and
// returns it. Ownership is verified before the attachment store is
// consulted, so a rejected caller never triggers a blob-store call.
func (s *TodoService) AttachTodo(ctx context.Context, userID, todoID, attachmentID string) (string, error) {
	if _, err := s.ownedTodo(ctx, userID, todoID, nil); err != nil {
		return "", err
	}

	url, err := s.attachments.RetrievalURL(attachmentID)
	if err != nil {
		return "", err
	}

	if err := s.items.SetAttachmentURL(ctx, todoID, url); err != nil {
		return "", err
	}

	return url, nil
}

// UploadURLForTodo issues a time-limited upload URL for an attachment
// destined for todoID. The caller must own the item.
func (s *TodoService) UploadURLForTodo(ctx context.Context, userID, todoID, attachmentID string) (string, error) {
	if _, err := s.ownedTodo(ctx, userID, todoID, nil); err != nil {
		return "", err
	}
	return s.attachments.UploadURL(attachmentID)
}

// ownedTodo loads todoID and verifies that userID owns it. When
// expectedVersion is set, a stored version that has moved past it
// fails with ErrVersionConflict.
func (s *TodoService) ownedTodo(ctx context.Context, userID, todoID string, expectedVersion *int64) (*models.Todo, error) {
	todo, err := s.items.GetByID(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, ErrTodoNotFound
	}
	if todo.UserID != userID {
		return nil, ErrNotOwner
	}
	if expectedVersion != nil && *expectedVersion != todo.Version {
		return nil, ErrVersionConflict
	}
	return todo, nil
}
