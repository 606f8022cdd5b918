package workbench

import (
	"encoding/json"

	"github.com/dd0wney/cluso-classdiagram/pkg/audit"
	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

// Topics published by the workbench
const (
	TopicModelChanged = "model.changed"
	TopicSelection    = "selection.changed"
)

// EventKind names what changed
type EventKind string

const (
	EventClassAdded   EventKind = "class_added"
	EventClassUpdated EventKind = "class_updated"
	EventClassRemoved EventKind = "class_removed"
	EventLinkAdded    EventKind = "link_added"
	EventLinkRemoved  EventKind = "link_removed"
	EventNodeMoved    EventKind = "node_moved"
	EventSelected     EventKind = "selected"
	EventDeselected   EventKind = "deselected"
)

// Event is published after every committed change and every selection move.
// Model carries the serialized graph for model changes.
type Event struct {
	Kind      EventKind       `json:"kind"`
	Class     uml.Identity    `json:"class,omitempty"`
	Previous  uml.Identity    `json:"previous,omitempty"`
	Version   uint64          `json:"version"`
	Source    audit.Source    `json:"source"`
	Discarded bool            `json:"discarded,omitempty"` // an unsaved draft was dropped
	Model     json.RawMessage `json:"model,omitempty"`
}
