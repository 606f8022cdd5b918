package audit

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

// Action types for history events
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionSelect Action = "select"
)

// ResourceType is the kind of model element an event touched
type ResourceType string

const (
	ResourceClass     ResourceType = "class"
	ResourceAttribute ResourceType = "attribute"
	ResourceMethod    ResourceType = "method"
	ResourceLink      ResourceType = "link"
)

// Status represents the outcome of an action
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Source says which surface issued the edit
type Source string

const (
	SourceEditor  Source = "editor"
	SourceDiagram Source = "diagram"
	SourceConfig  Source = "config"
)

// Event is a single entry in the edit history
type Event struct {
	ID           string         `json:"id"`
	Timestamp    time.Time      `json:"timestamp"`
	Action       Action         `json:"action"`
	ResourceType ResourceType   `json:"resource_type"`
	Source       Source         `json:"source,omitempty"`
	ClassID      uml.Identity   `json:"class_id,omitempty"`
	Member       string         `json:"member,omitempty"`
	Status       Status         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Version      uint64         `json:"version,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// Filter represents filtering criteria for history events
type Filter struct {
	Action       Action
	ResourceType ResourceType
	Source       Source
	ClassID      uml.Identity
	Status       Status
	StartTime    *time.Time
	EndTime      *time.Time
}

func (f *Filter) match(e *Event) bool {
	if f == nil {
		return true
	}
	switch {
	case f.Action != "" && e.Action != f.Action:
		return false
	case f.ResourceType != "" && e.ResourceType != f.ResourceType:
		return false
	case f.Source != "" && e.Source != f.Source:
		return false
	case f.ClassID != "" && e.ClassID != f.ClassID:
		return false
	case f.Status != "" && e.Status != f.Status:
		return false
	case f.StartTime != nil && e.Timestamp.Before(*f.StartTime):
		return false
	case f.EndTime != nil && e.Timestamp.After(*f.EndTime):
		return false
	}
	return true
}

// DefaultBufferSize is used when a non-positive size is requested
const DefaultBufferSize = 1024

// History keeps the most recent edit events in a circular buffer
type History struct {
	events     []*Event
	bufferSize int
	index      int
	count      int
	total      uint64
	mu         sync.RWMutex
}

// NewHistory creates a history holding at most bufferSize events
func NewHistory(bufferSize int) *History {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &History{
		events:     make([]*Event, bufferSize),
		bufferSize: bufferSize,
	}
}

// Log records an event, stamping ID and timestamp when missing
func (h *History) Log(event *Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.events[h.index] = event
	h.index = (h.index + 1) % h.bufferSize
	if h.count < h.bufferSize {
		h.count++
	}
	h.total++
}

// Events returns retained events oldest first, optionally filtered
func (h *History) Events(filter *Filter) []*Event {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make([]*Event, 0, h.count)
	for i := 0; i < h.count; i++ {
		idx := (h.index - h.count + i + h.bufferSize) % h.bufferSize
		if event := h.events[idx]; event != nil && filter.match(event) {
			result = append(result, event)
		}
	}
	return result
}

// Recent returns the n most recent events, newest first
func (h *History) Recent(n int) []*Event {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if n > h.count {
		n = h.count
	}
	result := make([]*Event, 0, n)
	for i := 0; i < n; i++ {
		idx := (h.index - 1 - i + h.bufferSize) % h.bufferSize
		result = append(result, h.events[idx])
	}
	return result
}

// Len returns the number of retained events
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// Total returns the number of events ever logged, including evicted ones
func (h *History) Total() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.total
}

// Clear removes all retained events
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.events = make([]*Event, h.bufferSize)
	h.index = 0
	h.count = 0
}

// NewEvent creates a successful event
func NewEvent(action Action, resource ResourceType, class uml.Identity, member string) *Event {
	return &Event{
		ID:           uuid.New().String(),
		Timestamp:    time.Now(),
		Action:       action,
		ResourceType: resource,
		ClassID:      class,
		Member:       member,
		Status:       StatusSuccess,
	}
}

// NewFailedEvent creates a failed event carrying the error text
func NewFailedEvent(action Action, resource ResourceType, class uml.Identity, err error) *Event {
	e := NewEvent(action, resource, class, "")
	e.Status = StatusFailure
	if err != nil {
		e.ErrorMessage = err.Error()
	}
	return e
}

// From sets the event source and returns the event
func (e *Event) From(source Source) *Event {
	e.Source = source
	return e
}

// String returns a human-readable representation of an event
func (e *Event) String() string {
	target := string(e.ClassID)
	if e.Member != "" {
		target += "." + e.Member
	}
	s := fmt.Sprintf("[%s] %s %s %s (status: %s)",
		e.Timestamp.Format(time.RFC3339),
		e.Action,
		e.ResourceType,
		target,
		e.Status,
	)
	if e.ErrorMessage != "" {
		s += ": " + e.ErrorMessage
	}
	return s
}
