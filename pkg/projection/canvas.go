package projection

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dd0wney/cluso-classdiagram/pkg/logging"
	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

// Node is the render view of one class.
type Node struct {
	Key        uml.Identity
	ClassName  string
	Attributes []string // display lines, e.g. "+ attr1: string"
	Methods    []string // display lines, e.g. "+ method1(): void"
	Loc        Position
}

// Canvas is a headless Projection. It keeps its own copies of the loaded
// classes plus node locations, and plays the renderer's part for picks,
// inline renames and moves.
type Canvas struct {
	mu     sync.Mutex
	layout Layout
	nodes  []uml.ClassRecord
	locs   map[uml.Identity]Position
	links  []uml.LinkRecord

	onSelect func(uml.ClassRecord)
	onChange func(Change)
	logger   logging.Logger
}

var _ Projection = (*Canvas)(nil)

// CanvasOption configures a Canvas
type CanvasOption func(*Canvas)

// WithLayout sets the layout used to place new nodes.
func WithLayout(l Layout) CanvasOption {
	return func(c *Canvas) { c.layout = l }
}

func WithLogger(l logging.Logger) CanvasOption {
	return func(c *Canvas) { c.logger = l }
}

// NewCanvas returns an empty canvas using the grid layout by default.
func NewCanvas(opts ...CanvasOption) *Canvas {
	c := &Canvas{
		layout: NewGridLayout(DefaultLayoutConfig()),
		locs:   make(map[uml.Identity]Position),
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(logging.Component("projection"))
	return c
}

// Load replaces the graph. Nodes already on the canvas keep their location;
// new nodes are placed by the layout. Locations of dropped nodes are forgotten.
func (c *Canvas) Load(classes []uml.ClassRecord, links []uml.LinkRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	timer := logging.StartTimer(c.logger, "graph loaded", logging.Count(len(classes)), logging.Int("links", len(links)))

	nodes := make([]uml.ClassRecord, len(classes))
	ids := make([]uml.Identity, len(classes))
	for i, rec := range classes {
		nodes[i] = rec.Clone()
		ids[i] = rec.ID
	}

	placed, err := c.layout.ComputeLayout(ids, links)

	locs := make(map[uml.Identity]Position, len(nodes))
	for _, id := range ids {
		if pos, ok := c.locs[id]; ok {
			locs[id] = pos
		} else {
			locs[id] = placed[id]
		}
	}

	c.nodes = nodes
	c.locs = locs
	c.links = append([]uml.LinkRecord{}, links...)

	// A failed layout still loads the graph; new nodes sit at the origin.
	if err != nil {
		timer.EndError(err)
		return
	}
	timer.End()
}

func (c *Canvas) OnSelect(fn func(uml.ClassRecord)) {
	c.mu.Lock()
	c.onSelect = fn
	c.mu.Unlock()
}

func (c *Canvas) OnModelChange(fn func(Change)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Click picks the node with the given key and hands its record to the select
// callback.
func (c *Canvas) Click(id uml.Identity) error {
	c.mu.Lock()
	i := c.find(id)
	if i < 0 {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", uml.ErrNotFound, id)
	}
	rec := c.nodes[i].Clone()
	fn := c.onSelect
	c.mu.Unlock()

	if fn != nil {
		fn(rec)
	}
	return nil
}

// Rename edits a node label in place, as an inline text edit would.
func (c *Canvas) Rename(id uml.Identity, name string) error {
	return c.transact(id, func(i int, p *Patch) {
		p.Kind = PatchRename
		p.Previous = c.nodes[i].Name
		p.Name = name
		c.nodes[i].Name = name
	})
}

// Move drags a node to pos.
func (c *Canvas) Move(id uml.Identity, pos Position) error {
	return c.transact(id, func(i int, p *Patch) {
		p.Kind = PatchMove
		c.locs[id] = pos
	})
}

// transact applies one rendering-side edit and emits the resulting Change.
// The callback runs without the canvas lock so it may call Load.
func (c *Canvas) transact(id uml.Identity, apply func(i int, p *Patch)) error {
	c.mu.Lock()
	i := c.find(id)
	if i < 0 {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", uml.ErrNotFound, id)
	}

	patch := Patch{Key: id}
	apply(i, &patch)
	patch.Loc = c.locs[id]
	patch.Record = c.nodes[i].Clone()

	model, err := marshalModel(c.nodes, c.locs, c.links)
	fn := c.onChange
	c.mu.Unlock()

	if err != nil {
		return fmt.Errorf("serialize model: %w", err)
	}
	c.logger.Debug("transaction finished", logging.ClassID(id), logging.String("kind", string(patch.Kind)))

	if fn != nil {
		fn(Change{Patch: patch, Model: model})
	}
	return nil
}

// Nodes returns the render view in display order.
func (c *Canvas) Nodes() []Node {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Node, len(c.nodes))
	for i, rec := range c.nodes {
		n := Node{
			Key:        rec.ID,
			ClassName:  rec.Name,
			Attributes: make([]string, len(rec.Attributes)),
			Methods:    make([]string, len(rec.Methods)),
			Loc:        c.locs[rec.ID],
		}
		for j, a := range rec.Attributes {
			n.Attributes[j] = a.String()
		}
		for j, m := range rec.Methods {
			n.Methods[j] = m.String()
		}
		out[i] = n
	}
	return out
}

// Links returns a copy of the rendered links.
func (c *Canvas) Links() []uml.LinkRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]uml.LinkRecord{}, c.links...)
}

// ToJSON serializes the whole graph.
func (c *Canvas) ToJSON() (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return marshalModel(c.nodes, c.locs, c.links)
}

func (c *Canvas) find(id uml.Identity) int {
	for i, n := range c.nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
