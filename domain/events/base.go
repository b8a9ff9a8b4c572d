package events

import (
	"time"

	"memoboard/domain/core/valueobjects"
)

// Event types published to the event bus
const (
	TypeMemoCreated = "memo.created"
	TypeMemoDeleted = "memo.deleted"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// MemoCreated is raised after the store accepted a new memo
type MemoCreated struct {
	BaseEvent
	MemoID   valueobjects.MemoID `json:"memo_id"`
	Title    string              `json:"title"`
	Category string              `json:"category"`
	Tags     []string            `json:"tags"`
	HasImage bool                `json:"has_image"`
}

// NewMemoCreated creates a MemoCreated event
func NewMemoCreated(memoID valueobjects.MemoID, title, category string, tags []string, hasImage bool, timestamp time.Time) MemoCreated {
	return MemoCreated{
		BaseEvent: BaseEvent{
			AggregateID: memoID.String(),
			EventType:   TypeMemoCreated,
			Timestamp:   timestamp,
			Version:     1,
		},
		MemoID:   memoID,
		Title:    title,
		Category: category,
		Tags:     tags,
		HasImage: hasImage,
	}
}

// MemoDeleted is raised after a memo was removed from the store
type MemoDeleted struct {
	BaseEvent
	MemoID valueobjects.MemoID `json:"memo_id"`
}

// NewMemoDeleted creates a MemoDeleted event
func NewMemoDeleted(memoID valueobjects.MemoID, timestamp time.Time) MemoDeleted {
	return MemoDeleted{
		BaseEvent: BaseEvent{
			AggregateID: memoID.String(),
			EventType:   TypeMemoDeleted,
			Timestamp:   timestamp,
			Version:     1,
		},
		MemoID: memoID,
	}
}
