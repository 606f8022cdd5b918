package store

import (
	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

// Snapshot is one immutable version of the class model. Accessors return
// copies, so a holder can never observe or cause a later write.
type Snapshot struct {
	classes []uml.ClassRecord
	index   map[uml.Identity]int
	links   []uml.LinkRecord
	version uint64
}

func newSnapshot(classes []uml.ClassRecord, links []uml.LinkRecord, version uint64) *Snapshot {
	index := make(map[uml.Identity]int, len(classes))
	for i, c := range classes {
		index[c.ID] = i
	}
	return &Snapshot{classes: classes, index: index, links: links, version: version}
}

// Version increases by one with every successful write.
func (s *Snapshot) Version() uint64 {
	return s.version
}

// Len returns the number of classes.
func (s *Snapshot) Len() int {
	return len(s.classes)
}

// Classes returns copies of every class in display order.
func (s *Snapshot) Classes() []uml.ClassRecord {
	out := make([]uml.ClassRecord, len(s.classes))
	for i, c := range s.classes {
		out[i] = c.Clone()
	}
	return out
}

// Get returns a copy of the class with the given identity.
func (s *Snapshot) Get(id uml.Identity) (uml.ClassRecord, bool) {
	i, ok := s.index[id]
	if !ok {
		return uml.ClassRecord{}, false
	}
	return s.classes[i].Clone(), true
}

// Index returns the position of the class in the overall list, or -1.
func (s *Snapshot) Index(id uml.Identity) int {
	if i, ok := s.index[id]; ok {
		return i
	}
	return -1
}

// Contains reports whether a class with the identity exists.
func (s *Snapshot) Contains(id uml.Identity) bool {
	_, ok := s.index[id]
	return ok
}

// Links returns a copy of the stored links.
func (s *Snapshot) Links() []uml.LinkRecord {
	return append([]uml.LinkRecord{}, s.links...)
}
