package audit

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_Log(t *testing.T) {
	h := NewHistory(10)

	event := &Event{Action: ActionCreate, ResourceType: ResourceClass, ClassID: "c1", Status: StatusSuccess}
	h.Log(event)

	assert.NotEmpty(t, event.ID, "ID should be stamped")
	assert.False(t, event.Timestamp.IsZero(), "timestamp should be stamped")
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, uint64(1), h.Total())
}

func TestHistory_BufferOverflow(t *testing.T) {
	h := NewHistory(3)

	for _, member := range []string{"a", "b", "c", "d", "e"} {
		h.Log(NewEvent(ActionCreate, ResourceAttribute, "c1", member))
	}

	events := h.Events(nil)
	require.Len(t, events, 3)
	assert.Equal(t, "c", events[0].Member, "oldest retained first")
	assert.Equal(t, "e", events[2].Member)
	assert.Equal(t, uint64(5), h.Total())

	recent := h.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "e", recent[0].Member)
	assert.Equal(t, "d", recent[1].Member)

	assert.Len(t, h.Recent(100), 3)
}

func TestHistory_DefaultBufferSize(t *testing.T) {
	h := NewHistory(0)
	assert.Equal(t, DefaultBufferSize, h.bufferSize)
}

func TestHistory_Filter(t *testing.T) {
	h := NewHistory(100)
	h.Log(NewEvent(ActionCreate, ResourceClass, "c1", "").From(SourceConfig))
	h.Log(NewEvent(ActionCreate, ResourceAttribute, "c1", "attr1").From(SourceEditor))
	h.Log(NewEvent(ActionUpdate, ResourceClass, "c2", "").From(SourceDiagram))
	h.Log(NewFailedEvent(ActionCreate, ResourceMethod, "c1", errors.New("duplicate")).From(SourceEditor))

	tests := []struct {
		name   string
		filter *Filter
		want   int
	}{
		{"no filter", nil, 4},
		{"by class", &Filter{ClassID: "c1"}, 3},
		{"by action", &Filter{Action: ActionUpdate}, 1},
		{"by resource", &Filter{ResourceType: ResourceAttribute}, 1},
		{"by source", &Filter{Source: SourceEditor}, 2},
		{"by status", &Filter{Status: StatusFailure}, 1},
		{"combined", &Filter{ClassID: "c1", Source: SourceEditor, Status: StatusSuccess}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, h.Events(tt.filter), tt.want)
		})
	}
}

func TestHistory_FilterByTimeRange(t *testing.T) {
	h := NewHistory(10)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		e := NewEvent(ActionUpdate, ResourceClass, "c1", "")
		e.Timestamp = base.Add(time.Duration(i) * time.Minute)
		h.Log(e)
	}

	start := base.Add(time.Minute)
	end := base.Add(3 * time.Minute)
	assert.Len(t, h.Events(&Filter{StartTime: &start, EndTime: &end}), 3)
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory(10)
	h.Log(NewEvent(ActionDelete, ResourceClass, "c1", ""))
	h.Clear()
	h.Clear()

	assert.Zero(t, h.Len())
	assert.Empty(t, h.Events(nil))
}

func TestHistory_ThreadSafety(t *testing.T) {
	h := NewHistory(50)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				h.Log(NewEvent(ActionUpdate, ResourceClass, "c1", ""))
				_ = h.Events(&Filter{ClassID: "c1"})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, h.Len())
	assert.Equal(t, uint64(200), h.Total())
}

func TestEvent_String(t *testing.T) {
	e := NewEvent(ActionCreate, ResourceAttribute, "c1", "attr1")
	s := e.String()
	assert.Contains(t, s, "create attribute c1.attr1")
	assert.Contains(t, s, "status: success")

	failed := NewFailedEvent(ActionCreate, ResourceMethod, "c1", errors.New("boom"))
	assert.True(t, strings.HasSuffix(failed.String(), ": boom"))
	assert.Equal(t, StatusFailure, failed.Status)
}

func TestExport(t *testing.T) {
	h := NewHistory(10)
	h.Log(NewEvent(ActionCreate, ResourceClass, "c1", "").From(SourceConfig))
	h.Log(NewEvent(ActionCreate, ResourceAttribute, "c1", "attr1").From(SourceEditor))

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, h.Export(&buf, FormatJSON, nil))

		var events []Event
		require.NoError(t, json.Unmarshal(buf.Bytes(), &events))
		require.Len(t, events, 2)
		assert.Equal(t, "attr1", events[1].Member)
	})

	t.Run("jsonl", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, h.Export(&buf, FormatJSONL, &Filter{Source: SourceEditor}))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], `"member":"attr1"`)
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, h.Export(&buf, FormatCSV, nil))

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "ID", records[0][0])
		assert.Equal(t, "config", records[1][4])
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, h.Export(&bytes.Buffer{}, ExportFormat("xml"), nil))
		_, err := ParseExportFormat("xml")
		assert.Error(t, err)
	})
}
