// Package dataset renames the image files of a dataset class directory into
// the contiguous <prefix><n><ext> scheme expected by the training loader.
//
// A rename runs in two phases. Every eligible file is first moved to a
// random intermediate name, then each staged file is moved to its final
// name. Final names may already exist among the original names (a second
// run over prefixed files), and staging removes that aliasing before any
// final name is claimed.
//
// The batch is not atomic. A failure part way leaves a mix of original,
// staged and final names behind. Callers can record progress through a
// Recorder and finish the batch later with Renamer.Resume.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/aki/dsrename/internal/core/id"
)

// Marker is the placeholder kept in otherwise empty class directories. It
// is never renamed or counted.
const Marker = ".keep"

// StepState tracks a single file through the two phases.
type StepState string

const (
	StatePending StepState = "pending"
	StateStaged  StepState = "staged"
	StateDone    StepState = "done"
)

// Step is one file of a Plan. Names are relative to Plan.Dir.
type Step struct {
	Index    int       `json:"index" yaml:"index"`
	Original string    `json:"original" yaml:"original"`
	Staged   string    `json:"staged" yaml:"staged"`
	Final    string    `json:"final" yaml:"final"`
	State    StepState `json:"state" yaml:"state"`
}

// Plan is the ordered mapping from original to final names for one run.
type Plan struct {
	Dir    string    `json:"dir" yaml:"dir"`
	Prefix string    `json:"prefix" yaml:"prefix"`
	Order  SortOrder `json:"order" yaml:"order"`
	Steps  []Step    `json:"steps" yaml:"steps"`
}

// Len returns the number of files in the plan.
func (p *Plan) Len() int { return len(p.Steps) }

// FinalName returns the final name for the file at 1-based position i.
func FinalName(prefix string, i int, ext string) string {
	return prefix + strconv.Itoa(i) + ext
}

// ValidatePrefix rejects prefixes that are empty or would escape the
// directory.
func ValidatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return &Error{Kind: KindInvalidArgument, Op: "prefix", Err: errors.New("prefix must not be empty")}
	case strings.ContainsRune(prefix, '/'), strings.ContainsRune(prefix, filepath.Separator):
		return &Error{Kind: KindInvalidArgument, Op: "prefix", Path: prefix, Err: errors.New("prefix must not contain a path separator")}
	case strings.ContainsRune(prefix, 0):
		return &Error{Kind: KindInvalidArgument, Op: "prefix", Err: errors.New("prefix must not contain NUL")}
	}
	return nil
}

// ListEligible returns the names of the eligible files in dir, sorted by
// order. Eligible files are regular files, or symlinks resolving to regular
// files, other than Marker.
func ListEligible(dir string, order SortOrder) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fsError("stat", dir, err, KindNotFound)
	}
	if !info.IsDir() {
		return nil, &Error{Kind: KindInvalidArgument, Op: "stat", Path: dir, Err: errors.New("not a directory")}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fsError("list", dir, err, KindPermissionDenied)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name() == Marker {
			continue
		}
		if isEligible(dir, e) {
			names = append(names, e.Name())
		}
	}

	slices.SortFunc(names, order.Compare)
	return names, nil
}

func isEligible(dir string, e os.DirEntry) bool {
	mode := e.Type()
	if mode.IsRegular() {
		return true
	}
	if mode&os.ModeSymlink == 0 {
		return false
	}
	target, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && target.Mode().IsRegular()
}

// BuildPlan computes the rename plan for dir without touching it. Every
// staged name is unique within the plan and absent from the directory at
// planning time.
func BuildPlan(dir, prefix string, order SortOrder, ids id.Generator) (*Plan, error) {
	if err := ValidatePrefix(prefix); err != nil {
		return nil, err
	}
	if order == "" {
		order = SortLexical
	}

	names, err := ListEligible(dir, order)
	if err != nil {
		return nil, err
	}

	// Every entry name, eligible or not, is off limits for staging.
	taken, err := entryNames(dir)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Dir: dir, Prefix: prefix, Order: order, Steps: make([]Step, 0, len(names))}
	for i, name := range names {
		ext := NormalizeExt(name)
		staged, err := stagedName(ids, ext, taken)
		if err != nil {
			return nil, &Error{Kind: KindRenameFailed, Op: "plan", Path: filepath.Join(dir, name), Err: err}
		}
		taken[staged] = struct{}{}

		plan.Steps = append(plan.Steps, Step{
			Index:    i + 1,
			Original: name,
			Staged:   staged,
			Final:    FinalName(prefix, i+1, ext),
			State:    StatePending,
		})
	}
	return plan, nil
}

// SiblingLinks returns the original names of plan steps that are symlinks
// pointing at another file of the same plan. The target is renamed too, so
// a relative link is left dangling afterwards.
func SiblingLinks(plan *Plan) []string {
	originals := make(map[string]struct{}, len(plan.Steps))
	for _, s := range plan.Steps {
		originals[s.Original] = struct{}{}
	}
	dir := filepath.Clean(plan.Dir)

	var links []string
	for _, s := range plan.Steps {
		target, err := os.Readlink(filepath.Join(dir, s.Original))
		if err != nil {
			continue
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, target)
		}
		target = filepath.Clean(target)
		if filepath.Dir(target) != dir {
			continue
		}
		if _, ok := originals[filepath.Base(target)]; ok {
			links = append(links, s.Original)
		}
	}
	return links
}

func entryNames(dir string) (map[string]struct{}, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fsError("list", dir, err, KindPermissionDenied)
	}
	taken := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		taken[e.Name()] = struct{}{}
	}
	return taken, nil
}

const maxStageAttempts = 8

func stagedName(ids id.Generator, ext string, taken map[string]struct{}) (string, error) {
	for range maxStageAttempts {
		name := ids.Generate() + ext
		if _, ok := taken[name]; !ok {
			return name, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique intermediate name after %d attempts", maxStageAttempts)
}
