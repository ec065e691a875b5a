package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/algoviz/internal/step"
	"github.com/san-kum/algoviz/internal/trace"
)

// Document is the on-disk form of a trace.
type Document struct {
	Algorithm string        `json:"algorithm"`
	Input     []float64     `json:"input"`
	Target    *float64      `json:"target,omitempty"`
	Steps     int           `json:"steps"`
	Trace     []step.Record `json:"trace"`
}

func NewDocument(t *trace.Trace) Document {
	doc := Document{
		Algorithm: t.Algorithm(),
		Input:     t.Input(),
		Steps:     t.Len(),
		Trace:     make([]step.Record, t.Len()),
	}
	if v, ok := t.Target(); ok {
		doc.Target = &v
	}
	for i, s := range t.Steps() {
		doc.Trace[i] = step.Record{Step: s}
	}
	return doc
}

// ToTrace rebuilds a trace. A document whose steps do not form a valid trace
// comes back as a single error step.
func (d Document) ToTrace() *trace.Trace {
	steps := make([]step.Step, len(d.Trace))
	for i, r := range d.Trace {
		steps[i] = r.Step
	}
	return trace.FromSteps(d.Algorithm, d.Input, d.Target, steps)
}

func WriteJSON(w io.Writer, t *trace.Trace) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewDocument(t))
}

func ExportJSON(path string, t *trace.Trace) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, t)
}

func ReadJSON(r io.Reader) (*trace.Trace, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode trace: %w", err)
	}
	return doc.ToTrace(), nil
}

func ImportJSON(path string) (*trace.Trace, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadJSON(file)
}

var csvHeader = []string{"index", "action", "snapshot", "comparing", "swapped", "sorted", "pivot", "note"}

// WriteCSV writes one row per step. List cells are space separated.
func WriteCSV(w io.Writer, t *trace.Trace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i, s := range t.Steps() {
		h := step.HighlightsOf(s)
		pivot := ""
		if h.HasPivot {
			pivot = strconv.Itoa(h.Pivot)
		}
		row := []string{
			strconv.Itoa(i),
			string(s.Action()),
			joinFloats(s.Values()),
			joinInts(h.Comparing),
			joinInts(h.Swapped),
			joinInts(h.Sorted),
			pivot,
			s.Note(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ExportCSV(path string, t *trace.Trace) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, t)
}

func joinFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
