package hoard

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dyluth/housie/internal/printer"
	"github.com/dyluth/housie/pkg/strip"
)

// maxLineSize bounds a single JSONL record. A record is well under 2KB.
const maxLineSize = 64 * 1024

// FormatText writes a strip as ticket grids under a bold strip heading.
func FormatText(w io.Writer, r *StripRecord) error {
	if err := printer.Heading(w, "Strip %d (generation %d, seed %d)\n", r.Index, r.Generation, r.Seed); err != nil {
		return fmt.Errorf("failed to write strip heading: %w", err)
	}

	for i, g := range r.Tickets {
		if _, err := fmt.Fprintf(w, "Ticket %d\n%s", i+1, strip.RenderGrid(g)); err != nil {
			return fmt.Errorf("failed to write ticket %d: %w", i+1, err)
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}

// WriteJSONL writes one record as a single JSON line (JSONL).
func WriteJSONL(w io.Writer, r *StripRecord) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal strip to JSON: %w", err)
	}

	if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
		return fmt.Errorf("failed to write JSONL output: %w", err)
	}
	return nil
}

// FormatSingleJSON writes a single record as pretty-printed JSON.
func FormatSingleJSON(w io.Writer, r *StripRecord) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal strip to JSON: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}

	fmt.Fprintln(w)
	return nil
}

// ParseJSONL reads records written by WriteJSONL. Blank lines are skipped;
// a malformed line fails with its line number.
func ParseJSONL(rd io.Reader) ([]*StripRecord, error) {
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	var records []*StripRecord
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var r StripRecord
		if err := json.Unmarshal([]byte(text), &r); err != nil {
			return nil, fmt.Errorf("line %d: failed to parse strip: %w", line, err)
		}
		records = append(records, &r)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read JSONL input: %w", err)
	}
	return records, nil
}

// formatID truncates a UUID to its first 8 characters for compact display.
func formatID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
