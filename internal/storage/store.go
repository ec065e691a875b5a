package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/algoviz/internal/store"
	"github.com/san-kum/algoviz/internal/trace"
)

// Store archives traces as run directories holding metadata.json,
// trace.json and steps.csv.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string    `json:"id"`
	Algorithm   string    `json:"algorithm"`
	Timestamp   time.Time `json:"timestamp"`
	Seed        int64     `json:"seed"`
	Size        int       `json:"size"`
	Steps       int       `json:"steps"`
	Comparisons int       `json:"comparisons"`
	Writes      int       `json:"writes"`
	Outcome     string    `json:"outcome"`
}

func (s *Store) Save(t *trace.Trace, seed int64) (string, error) {
	ts := s.now()
	runID := fmt.Sprintf("%s_%d", t.Algorithm(), ts.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	sum := trace.Summarize(t)
	meta := RunMetadata{
		ID:          runID,
		Algorithm:   t.Algorithm(),
		Timestamp:   ts,
		Seed:        seed,
		Size:        sum.Size,
		Steps:       sum.Steps,
		Comparisons: sum.Comparisons,
		Writes:      sum.Writes,
		Outcome:     string(sum.Outcome),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := store.ExportJSON(filepath.Join(runDir, "trace.json"), t); err != nil {
		return "", err
	}
	if err := store.ExportCSV(filepath.Join(runDir, "steps.csv"), t); err != nil {
		return "", err
	}

	ix, err := s.index(context.Background())
	if err != nil {
		return "", err
	}
	defer ix.Close()
	if err := ix.Put(context.Background(), meta); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) index(ctx context.Context) (*Index, error) {
	return OpenIndex(ctx, filepath.Join(s.baseDir, indexFile))
}

// Query returns indexed runs, filtered by algorithm when it is non-empty.
func (s *Store) Query(ctx context.Context, algorithm string) ([]RunMetadata, error) {
	if _, err := os.Stat(s.baseDir); os.IsNotExist(err) {
		return []RunMetadata{}, nil
	}
	ix, err := s.index(ctx)
	if err != nil {
		return nil, err
	}
	defer ix.Close()
	return ix.Query(ctx, algorithm)
}

// Reindex rebuilds the index from the run directories and returns how many
// runs it holds.
func (s *Store) Reindex(ctx context.Context) (int, error) {
	runs, err := s.List()
	if err != nil {
		return 0, err
	}
	if err := s.Init(); err != nil {
		return 0, err
	}
	ix, err := s.index(ctx)
	if err != nil {
		return 0, err
	}
	defer ix.Close()

	if err := ix.clear(ctx); err != nil {
		return 0, fmt.Errorf("clear index: %w", err)
	}
	for _, m := range runs {
		if err := ix.Put(ctx, m); err != nil {
			return 0, err
		}
	}
	return len(runs), nil
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTrace(runID string) (*trace.Trace, error) {
	return store.ImportJSON(filepath.Join(s.baseDir, runID, "trace.json"))
}
