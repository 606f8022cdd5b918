package audit

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
)

// ExportFormat represents the format for exporting history
type ExportFormat string

const (
	FormatJSON  ExportFormat = "json"
	FormatCSV   ExportFormat = "csv"
	FormatJSONL ExportFormat = "jsonl" // JSON Lines (one JSON object per line)
)

// ParseExportFormat validates a format name
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(s); f {
	case FormatJSON, FormatCSV, FormatJSONL:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format: %q", s)
	}
}

// Export writes the retained events matching filter to w
func (h *History) Export(w io.Writer, format ExportFormat, filter *Filter) error {
	events := h.Events(filter)

	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(events)
	case FormatJSONL:
		return exportJSONL(w, events)
	case FormatCSV:
		return exportCSV(w, events)
	default:
		return fmt.Errorf("unsupported export format: %q", format)
	}
}

func exportJSONL(w io.Writer, events []*Event) error {
	encoder := json.NewEncoder(w)
	for _, event := range events {
		if err := encoder.Encode(event); err != nil {
			return err
		}
	}
	return nil
}

func exportCSV(w io.Writer, events []*Event) (retErr error) {
	csvWriter := csv.NewWriter(w)
	defer func() {
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil && retErr == nil {
			retErr = fmt.Errorf("CSV writer flush error: %w", err)
		}
	}()

	header := []string{"ID", "Timestamp", "Action", "ResourceType", "Source", "ClassID", "Member", "Status", "Version", "ErrorMessage"}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, event := range events {
		record := []string{
			event.ID,
			event.Timestamp.Format(time.RFC3339),
			string(event.Action),
			string(event.ResourceType),
			string(event.Source),
			string(event.ClassID),
			event.Member,
			string(event.Status),
			strconv.FormatUint(event.Version, 10),
			event.ErrorMessage,
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	return nil
}
