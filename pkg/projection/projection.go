// Package projection is the boundary to the graphical diagram. The renderer
// only ever holds copies of class records: it reports picks through the
// select callback and structural edits through model-change notifications.
package projection

import (
	"encoding/json"

	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

// Projection is what the page needs from a diagram renderer.
type Projection interface {
	// Load replaces the rendered graph with copies of classes and links.
	Load(classes []uml.ClassRecord, links []uml.LinkRecord)
	// OnSelect registers the callback invoked with the full record of a picked node.
	OnSelect(fn func(uml.ClassRecord))
	// OnModelChange registers the callback invoked after each rendering-side transaction.
	OnModelChange(fn func(Change))
}

// PatchKind names a rendering-side transaction
type PatchKind string

const (
	PatchRename PatchKind = "rename"
	PatchMove   PatchKind = "move"
)

// Patch is the raw edit the renderer applied to its copy of a class.
type Patch struct {
	Kind     PatchKind       `json:"kind"`
	Key      uml.Identity    `json:"key"`
	Name     string          `json:"name,omitempty"`
	Previous string          `json:"previous,omitempty"`
	Loc      Position        `json:"loc"`
	Record   uml.ClassRecord `json:"record"`
}

// Change is emitted when a rendering-side transaction completes. Model is
// the serialized whole graph after the transaction.
type Change struct {
	Patch Patch
	Model json.RawMessage
}
