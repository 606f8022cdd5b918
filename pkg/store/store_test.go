package store

import (
	"sync"
	"testing"

	"github.com/dd0wney/cluso-classdiagram/pkg/metrics"
	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func class(id, name string) uml.ClassRecord {
	return uml.ClassRecord{ID: uml.Identity(id), Name: name, Attributes: []uml.Attribute{}, Methods: []uml.Method{}}
}

func TestStore_Add(t *testing.T) {
	s := New()
	assert.Equal(t, 0, s.Snapshot().Len())

	snap, err := s.Add(class("a", "A"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), snap.Version())

	_, err = s.Add(class("b", "B"))
	require.NoError(t, err)

	_, err = s.Add(class("a", "Again"))
	assert.ErrorIs(t, err, uml.ErrDuplicateIdentity)

	_, err = s.Add(class("", "NoID"))
	assert.ErrorIs(t, err, uml.ErrInvalidValue)

	snap = s.Snapshot()
	assert.Equal(t, 2, snap.Len())
	assert.Equal(t, uint64(2), snap.Version())
	assert.Equal(t, []string{"A", "B"}, names(snap))
}

func TestStore_ReplacePreservesPosition(t *testing.T) {
	s := New()
	for _, id := range []string{"a", "b", "c"} {
		_, err := s.Add(class(id, id))
		require.NoError(t, err)
	}

	updated := class("b", "Renamed")
	updated.Attributes = append(updated.Attributes, uml.Attribute{Visibility: uml.Public, Name: "x", Type: uml.TypeInt})

	snap, err := s.Replace("b", updated)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "Renamed", "c"}, names(snap))
	assert.Equal(t, 1, snap.Index("b"))

	_, err = s.Replace("zzz", class("zzz", "Z"))
	assert.ErrorIs(t, err, uml.ErrNotFound)

	_, err = s.Replace("a", class("other", "A"))
	assert.ErrorIs(t, err, uml.ErrIdentityChanged)
}

func TestStore_Remove(t *testing.T) {
	s := New()
	_, err := s.Add(class("only", "Only"))
	require.NoError(t, err)

	snap, err := s.Remove("only")
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Len())

	_, err = s.Remove("only")
	assert.ErrorIs(t, err, uml.ErrNotFound)
	assert.Equal(t, snap, s.Snapshot(), "failed remove must not publish")
}

func TestStore_CopyOnWrite(t *testing.T) {
	s := New()
	_, err := s.Add(class("a", "A"))
	require.NoError(t, err)

	old := s.Snapshot()

	// Mutating a returned record does not reach the store
	rec, ok := old.Get("a")
	require.True(t, ok)
	rec.Name = "hacked"
	rec.Attributes = append(rec.Attributes, uml.Attribute{Name: "x"})
	got, _ := s.Get("a")
	assert.Equal(t, "A", got.Name)
	assert.Empty(t, got.Attributes)

	// Mutating the record passed to Replace after the call does not either
	next := class("a", "B")
	_, err = s.Replace("a", next)
	require.NoError(t, err)
	next.Name = "C"

	got, _ = s.Get("a")
	assert.Equal(t, "B", got.Name)

	// The older snapshot still shows the older state
	prev, _ := old.Get("a")
	assert.Equal(t, "A", prev.Name)
}

func TestStore_Links(t *testing.T) {
	s := New()
	_, _ = s.Add(class("a", "A"))
	_, _ = s.Add(class("b", "B"))

	link := uml.LinkRecord{From: "a", To: "b"}
	snap, err := s.AddLink(link)
	require.NoError(t, err)
	assert.Equal(t, []uml.LinkRecord{link}, snap.Links())

	// Links are opaque and survive class removal
	snap, err = s.Remove("b")
	require.NoError(t, err)
	assert.Equal(t, []uml.LinkRecord{link}, snap.Links())

	snap, err = s.RemoveLink(link)
	require.NoError(t, err)
	assert.Empty(t, snap.Links())

	_, err = s.RemoveLink(link)
	assert.ErrorIs(t, err, uml.ErrNotFound)
}

func TestStore_ConcurrentReadersSeeWholeSnapshots(t *testing.T) {
	s := New()
	_, err := s.Add(class("a", "A"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := s.Snapshot()
				// Every snapshot is internally consistent
				for i, c := range snap.Classes() {
					if snap.Index(c.ID) != i {
						t.Errorf("index mismatch for %s", c.ID)
						return
					}
				}
			}
		}()
	}

	for i := 0; i < 200; i++ {
		rec := class("a", "A")
		rec.Attributes = make([]uml.Attribute, i%5)
		_, err := s.Replace("a", rec)
		require.NoError(t, err)
	}
	close(stop)
	wg.Wait()

	assert.Equal(t, uint64(201), s.Snapshot().Version())
}

func TestStore_Metrics(t *testing.T) {
	reg := metrics.NewRegistry()
	s := New(WithMetrics(reg))

	_, _ = s.Add(class("a", "A"))
	_, _ = s.Add(class("a", "A"))

	families, err := reg.GetPrometheusRegistry().Gather()
	require.NoError(t, err)

	found := false
	for _, f := range families {
		if f.GetName() == "classdiagram_store_classes_total" {
			found = true
			assert.Equal(t, 1.0, f.GetMetric()[0].GetGauge().GetValue())
		}
	}
	assert.True(t, found)
}

func names(s *Snapshot) []string {
	var out []string
	for _, c := range s.Classes() {
		out = append(out, c.Name)
	}
	return out
}
