package todo

import (
	"context"

	"github.com/idilsaglam/todos/internal/model"
)

// Backend is the persistent record store behind a List. Implementations keep
// records in insertion order and assign the id on Create.
type Backend interface {
	Create(ctx context.Context, it model.Item) (string, error)
	ReadAll(ctx context.Context) ([]model.Item, error)
	Update(ctx context.Context, id string, it model.Item) error
	Delete(ctx context.Context, id string) error
}
