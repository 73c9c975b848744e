package events

import (
	"context"
	"sync"
	"time"
)

const (
	UserCreated      = "user_created"
	UserUpdated      = "user_updated"
	UserDeleted      = "user_deleted"
	UserLoggedIn     = "user_logged_in"
	RoleCreated      = "role_created"
	RoleUpdated      = "role_updated"
	RoleDeleted      = "role_deleted"
	PrivilegeCreated = "privilege_created"
	PrivilegeUpdated = "privilege_updated"
	PrivilegeDeleted = "privilege_deleted"
	StudentCreated   = "student_created"
	StudentUpdated   = "student_updated"
	StudentDeleted   = "student_deleted"
)

// Event never carries credentials or token values.
type Event struct {
	Type     string    `json:"type"`
	EntityID uint      `json:"entity_id,omitempty"`
	Name     string    `json:"name,omitempty"`
	At       time.Time `json:"at"`
}

func New(typ string, id uint, name string) Event {
	return Event{Type: typ, EntityID: id, Name: name, At: time.Now().UTC()}
}

type Publisher interface {
	PublishEvent(ctx context.Context, key string, event Event) error
	Close() error
}

// Nop drops every event. It is used when no brokers are configured.
type Nop struct{}

func (Nop) PublishEvent(context.Context, string, Event) error { return nil }

func (Nop) Close() error { return nil }

// Memory keeps published events in order.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

func (m *Memory) PublishEvent(_ context.Context, _ string, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *Memory) Close() error { return nil }

func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Types returns the type of every published event in order.
func (m *Memory) Types() []string {
	evs := m.Events()
	out := make([]string, len(evs))
	for i, e := range evs {
		out[i] = e.Type
	}
	return out
}
