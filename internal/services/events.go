package services

import (
	"sync"

	"github.com/google/uuid"
)

type EventType string

const (
	EventAnnouncementPublished EventType = "announcement_published"
	EventStatusChanged         EventType = "status_changed"
	EventAuditionScheduled     EventType = "audition_scheduled"
	EventAuditionResult        EventType = "audition_result"
)

// DomainEvent describes a mutation that fans out notifications. Events are
// published synchronously after the mutation has been persisted, so a
// handler always observes committed state.
type DomainEvent struct {
	Type           EventType
	ParticipantIDs []uuid.UUID
	Title          string
	Message        string
	RelatedID      *uuid.UUID
}

type EventHandler func(event DomainEvent)

// EventBus is a minimal synchronous in-process publisher. Handler errors are
// the handler's problem; publishing never fails the originating request.
type EventBus struct {
	mu       sync.RWMutex
	handlers []EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

func (b *EventBus) Subscribe(handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, handler)
}

func (b *EventBus) Publish(event DomainEvent) {
	b.mu.RLock()
	handlers := make([]EventHandler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}
