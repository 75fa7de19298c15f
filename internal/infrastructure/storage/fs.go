package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"svw.info/powerletter/internal/domain"
	"svw.info/powerletter/internal/ports"
)

var (
	// ErrMalformedLevel marks level data the engine refuses to load.
	ErrMalformedLevel = errors.New("storage: malformed level")
	// ErrNotFound is returned when no level file matches the selection and id.
	ErrNotFound = errors.New("storage: level not found")
	// ErrBadSelection is returned for selection parts that are not plain names.
	ErrBadSelection = errors.New("storage: invalid selection")
)

const (
	defaultLanguage = "en"
	defaultCategory = "general"
)

// FS stores levels as JSON under dir/{language}/{category}/{difficulty}/{id}.json.
type FS struct {
	dir    string
	solver ports.Solver
}

// NewFS returns a store rooted at dir. When solver is non-nil every explicit
// layout must also be solvable to load.
func NewFS(dir string, solver ports.Solver) *FS { return &FS{dir: dir, solver: solver} }

func segment(s, def string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	if s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrBadSelection, s)
	}
	return s, nil
}

func (s *FS) bucket(sel domain.Selection) (string, error) {
	lang, err := segment(sel.Language, defaultLanguage)
	if err != nil {
		return "", err
	}
	cat, err := segment(sel.Category, defaultCategory)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, lang, cat, sel.Difficulty.String()), nil
}

func (s *FS) pathFor(sel domain.Selection, id string) (string, error) {
	dir, err := s.bucket(sel)
	if err != nil {
		return "", err
	}
	name, err := segment(id, "")
	if err != nil || name == "" {
		return "", fmt.Errorf("%w: level id %q", ErrBadSelection, id)
	}
	return filepath.Join(dir, name+".json"), nil
}

func (s *FS) Save(ctx context.Context, sel domain.Selection, lvl *domain.Level) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if lvl == nil || lvl.ID == "" {
		return fmt.Errorf("%w: missing id", ErrMalformedLevel)
	}
	if err := Validate(lvl); err != nil {
		return err
	}
	target, err := s.pathFor(sel, lvl.ID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(lvl)
}

func (s *FS) Load(ctx context.Context, sel domain.Selection, id string) (*domain.Level, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.pathFor(sel, id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	var out domain.Level
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedLevel, id, err)
	}
	out.ID = id
	// The folder decides the difficulty.
	out.Difficulty = sel.Difficulty
	if err := Validate(&out); err != nil {
		return nil, err
	}
	if err := s.checkSolvable(ctx, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns the levels of one pack sorted by id. Unreadable files are skipped;
// a missing pack is empty.
func (s *FS) List(ctx context.Context, sel domain.Selection) ([]domain.LevelMeta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir, err := s.bucket(sel)
	if err != nil {
		return nil, err
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	type m struct {
		Name string `json:"name,omitempty"`
	}
	var out []domain.LevelMeta
	for _, e := range ents {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		var mm m
		if err := json.Unmarshal(data, &mm); err != nil {
			continue
		}
		// Load resolves levels by file name, so the stem is the id.
		id := strings.TrimSuffix(name, ".json")
		out = append(out, domain.LevelMeta{ID: id, Name: mm.Name, Difficulty: sel.Difficulty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
