package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ytakahashi/todo-api/internal/models"
)

const todosCollection = "todos"

// FirestoreStore implements ItemStore on a Firestore collection keyed
// by todoId, with userId as the owner index field.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(ctx context.Context, projectID string) (*FirestoreStore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %v", err)
	}

	return &FirestoreStore{
		client: client,
	}, nil
}

func (fs *FirestoreStore) Close() error {
	return fs.client.Close()
}

func (fs *FirestoreStore) ListByOwner(ctx context.Context, userID string) ([]*models.Todo, error) {
	iter := fs.client.Collection(todosCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)

	todos := []*models.Todo{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate todos: %v", err)
		}

		var todo models.Todo
		if err := doc.DataTo(&todo); err != nil {
			return nil, fmt.Errorf("failed to unmarshal todo: %v", err)
		}

		todos = append(todos, &todo)
	}

	return todos, nil
}

func (fs *FirestoreStore) GetByID(ctx context.Context, todoID string) (*models.Todo, error) {
	doc, err := fs.client.Collection(todosCollection).Doc(todoID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %v", err)
	}

	var todo models.Todo
	if err := doc.DataTo(&todo); err != nil {
		return nil, fmt.Errorf("failed to unmarshal todo: %v", err)
	}

	return &todo, nil
}

func (fs *FirestoreStore) Create(ctx context.Context, todo *models.Todo) error {
	// Create (not Set) so an id collision fails instead of overwriting.
	_, err := fs.client.Collection(todosCollection).Doc(todo.TodoID).Create(ctx, todo)
	if status.Code(err) == codes.AlreadyExists {
		return ErrTodoExists
	}
	if err != nil {
		return fmt.Errorf("failed to create todo: %v", err)
	}

	return nil
}

func (fs *FirestoreStore) Update(ctx context.Context, todoID string, patch models.UpdateTodoRequest) error {
	updates := []firestore.Update{
		{Path: "version", Value: firestore.Increment(1)},
	}
	if patch.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *patch.Name})
	}
	if patch.DueDate != nil {
		updates = append(updates, firestore.Update{Path: "dueDate", Value: *patch.DueDate})
	}
	if patch.Done != nil {
		updates = append(updates, firestore.Update{Path: "done", Value: *patch.Done})
	}

	_, err := fs.client.Collection(todosCollection).Doc(todoID).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return ErrTodoNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update todo: %v", err)
	}

	return nil
}

func (fs *FirestoreStore) Delete(ctx context.Context, todoID string) error {
	_, err := fs.client.Collection(todosCollection).Doc(todoID).Delete(ctx, firestore.Exists)
	if status.Code(err) == codes.NotFound {
		return ErrTodoNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete todo: %v", err)
	}

	return nil
}

func (fs *FirestoreStore) SetAttachmentURL(ctx context.Context, todoID, url string) error {
	_, err := fs.client.Collection(todosCollection).Doc(todoID).Update(ctx, []firestore.Update{
		{Path: "attachmentUrl", Value: url},
		{Path: "version", Value: firestore.Increment(1)},
	})
	if status.Code(err) == codes.NotFound {
		return ErrTodoNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to set attachment URL: %v", err)
	}

	return nil
}
