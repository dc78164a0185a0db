// Package journal records the progress of a rename plan on disk so that a
// run interrupted part way can be completed with `dsrename resume`.
//
// The journal is a YAML document written before the first rename and
// rewritten after every rename. It is removed once the plan completes.
package journal

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aki/dsrename/internal/core/dataset"
	"github.com/aki/dsrename/internal/filemanager"
)

// Version is the journal format version written by this build.
const Version = 1

// Journal is the on-disk document.
type Journal struct {
	Version   int          `yaml:"version"`
	CreatedAt time.Time    `yaml:"created_at"`
	UpdatedAt time.Time    `yaml:"updated_at"`
	Plan      dataset.Plan `yaml:"plan"`
}

// Store persists one journal file and implements dataset.Recorder.
type Store struct {
	path  string
	files *filemanager.Manager[Journal]
	now   func() time.Time
}

var _ dataset.Recorder = (*Store)(nil)

// NewStore returns a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{
		path:  path,
		files: filemanager.NewManager[Journal](),
		now:   time.Now,
	}
}

// Path returns the journal file location.
func (s *Store) Path() string { return s.path }

// DefaultPath derives a journal file name inside journalDir for target dir.
// The name combines the directory's base name with a hash of its absolute
// path so two class directories never share a journal.
func DefaultPath(journalDir, dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	sum := sha256.Sum256([]byte(abs))
	base := strings.Map(func(r rune) rune {
		if r == filepath.Separator || r == ' ' {
			return '_'
		}
		return r
	}, filepath.Base(abs))
	return filepath.Join(journalDir, fmt.Sprintf("%s-%s.yaml", base, hex.EncodeToString(sum[:6]))), nil
}

// Begin writes the plan with its current step states. When the journal
// already exists, as it does on resume, its creation time is kept.
func (s *Store) Begin(ctx context.Context, plan *dataset.Plan) error {
	if !filepath.IsAbs(plan.Dir) {
		return fmt.Errorf("journal requires an absolute directory, got %q", plan.Dir)
	}

	now := s.now().UTC()
	j := &Journal{
		Version:   Version,
		CreatedAt: now,
		UpdatedAt: now,
		Plan:      *plan,
	}
	if prev, _, err := s.files.Read(ctx, s.path); err == nil && !prev.CreatedAt.IsZero() {
		j.CreatedAt = prev.CreatedAt
	}
	j.Plan.Steps = append([]dataset.Step(nil), plan.Steps...)

	if err := s.files.Write(ctx, s.path, j); err != nil {
		return fmt.Errorf("failed to write journal %s: %w", s.path, err)
	}
	return nil
}

// Mark records the new state of the step at position index.
func (s *Store) Mark(ctx context.Context, index int, state dataset.StepState) error {
	return s.files.Update(ctx, s.path, func(j *Journal) error {
		if index < 0 || index >= len(j.Plan.Steps) {
			return fmt.Errorf("step %d out of range (journal has %d steps)", index, len(j.Plan.Steps))
		}
		j.Plan.Steps[index].State = state
		j.UpdatedAt = s.now().UTC()
		return nil
	})
}

// Finish removes the journal.
func (s *Store) Finish(ctx context.Context) error {
	return s.files.Delete(ctx, s.path)
}

// Load reads the journal and returns its plan.
func (s *Store) Load(ctx context.Context) (*Journal, error) {
	j, _, err := s.files.Read(ctx, s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal %s: %w", s.path, err)
	}
	if j.Version != Version {
		return nil, fmt.Errorf("unsupported journal version %d in %s", j.Version, s.path)
	}
	if j.Plan.Dir == "" || j.Plan.Prefix == "" {
		return nil, fmt.Errorf("journal %s has no plan", s.path)
	}
	return j, nil
}
