package ports

import (
	"context"

	"memoboard/domain/core/entities"
	"memoboard/domain/core/valueobjects"
	"memoboard/domain/events"
)

// MemoDraft carries the fields of a memo that the store has not yet accepted.
// The store assigns the id and the creation time.
type MemoDraft struct {
	Content  valueobjects.MemoContent
	Category string
	Image    valueobjects.Image
	Tags     []string
}

// MemoStore defines the interface for memo persistence
// This is a port in hexagonal architecture - the engine doesn't know about the implementation
type MemoStore interface {
	// List returns every stored memo in store order
	List(ctx context.Context) ([]entities.Memo, error)

	// Create persists a draft and returns the stored memo
	Create(ctx context.Context, draft MemoDraft) (entities.Memo, error)

	// Delete removes a memo; an absent id may yield a NotFound error
	Delete(ctx context.Context, id valueobjects.MemoID) error
}

// CategorySource is implemented by stores that also serve a category catalog
type CategorySource interface {
	ListCategories(ctx context.Context) ([]entities.Category, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}
