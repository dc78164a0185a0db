package dataset

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/aki/dsrename/internal/core/id"
	"github.com/aki/dsrename/internal/core/logger"
)

// Recorder persists progress of a plan so an interrupted run can be resumed.
// Begin is called before the first rename, Mark after every rename and
// Finish once every step is done.
type Recorder interface {
	Begin(ctx context.Context, plan *Plan) error
	Mark(ctx context.Context, index int, state StepState) error
	Finish(ctx context.Context) error
}

// Result describes a completed run.
type Result struct {
	Dir     string `json:"dir"`
	Prefix  string `json:"prefix"`
	Renamed int    `json:"renamed"`
	Steps   []Step `json:"steps"`
}

// Renamer executes rename plans. It performs no locking; concurrent changes
// to the target directory during a run make the final numbering undefined.
type Renamer struct {
	log      logger.Logger
	ids      id.Generator
	order    SortOrder
	recorder Recorder
}

// Option configures a Renamer.
type Option func(*Renamer)

// WithLogger sets the logger. Each rename is logged at debug level.
func WithLogger(l logger.Logger) Option {
	return func(r *Renamer) { r.log = l }
}

// WithIDGenerator replaces the UUID generator used for staged names.
func WithIDGenerator(g id.Generator) Option {
	return func(r *Renamer) { r.ids = g }
}

// WithSortOrder sets how files are ranked. The default is SortLexical.
func WithSortOrder(o SortOrder) Option {
	return func(r *Renamer) { r.order = o }
}

// WithRecorder enables progress recording.
func WithRecorder(rec Recorder) Option {
	return func(r *Renamer) { r.recorder = rec }
}

// NewRenamer creates a Renamer.
func NewRenamer(opts ...Option) *Renamer {
	r := &Renamer{
		log:   logger.Nop(),
		ids:   id.NewUUIDGenerator(),
		order: SortLexical,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Plan builds the rename plan for dir without modifying anything.
// Symlinks whose target is renamed in the same run are logged as warnings.
func (r *Renamer) Plan(dir, prefix string) (*Plan, error) {
	plan, err := BuildPlan(dir, prefix, r.order, r.ids)
	if err != nil {
		return nil, err
	}
	for _, link := range SiblingLinks(plan) {
		r.log.Warn("symlink target is renamed in the same run, link will dangle", "dir", dir, "link", link)
	}
	return plan, nil
}

// Rename renames every eligible file in dir to <prefix><n><ext>, n from 1.
// The first failing rename aborts the run and the directory is left as it
// is at that point.
func (r *Renamer) Rename(ctx context.Context, dir, prefix string) (*Result, error) {
	plan, err := r.Plan(dir, prefix)
	if err != nil {
		return nil, err
	}
	return r.Execute(ctx, plan)
}

// Execute runs a plan produced by Plan.
func (r *Renamer) Execute(ctx context.Context, plan *Plan) (*Result, error) {
	log := r.log.With("dir", plan.Dir, "prefix", plan.Prefix)
	log.Info("found files", "count", plan.Len())
	return r.run(ctx, log, plan)
}

// Resume completes a plan whose steps may already be staged or done, such
// as one loaded from a journal after a failed run.
func (r *Renamer) Resume(ctx context.Context, plan *Plan) (*Result, error) {
	log := r.log.With("dir", plan.Dir, "prefix", plan.Prefix)

	counts := make(map[StepState]int)
	for _, s := range plan.Steps {
		counts[s.State]++
	}
	log.Info("resuming plan",
		"pending", counts[StatePending],
		"staged", counts[StateStaged],
		"done", counts[StateDone])

	return r.run(ctx, log, plan)
}

func (r *Renamer) run(ctx context.Context, log logger.Logger, plan *Plan) (*Result, error) {
	if err := ValidatePrefix(plan.Prefix); err != nil {
		return nil, err
	}

	if r.recorder != nil {
		if err := r.recorder.Begin(ctx, plan); err != nil {
			return nil, fmt.Errorf("failed to record plan: %w", err)
		}
	}

	for i := range plan.Steps {
		if err := r.stage(ctx, log, plan, i); err != nil {
			return nil, err
		}
	}
	log.Debug("staging complete")

	for i := range plan.Steps {
		if err := r.finalize(ctx, log, plan, i); err != nil {
			return nil, err
		}
	}

	if r.recorder != nil {
		if err := r.recorder.Finish(ctx); err != nil {
			return nil, fmt.Errorf("failed to finish journal: %w", err)
		}
	}

	if n := plan.Len(); n > 0 {
		log.Info("renamed files",
			"count", n,
			"first", plan.Steps[0].Final,
			"last", plan.Steps[n-1].Final)
	}

	return &Result{
		Dir:     plan.Dir,
		Prefix:  plan.Prefix,
		Renamed: plan.Len(),
		Steps:   plan.Steps,
	}, nil
}

// stage moves a pending step to its intermediate name.
func (r *Renamer) stage(ctx context.Context, log logger.Logger, plan *Plan, i int) error {
	step := &plan.Steps[i]
	if step.State != StatePending {
		return nil
	}
	src := filepath.Join(plan.Dir, step.Original)
	dst := filepath.Join(plan.Dir, step.Staged)

	if err := checkCanceled(ctx, "stage", src); err != nil {
		return err
	}

	ok, err := exists(src)
	if err != nil {
		return fsError("stage", src, err, KindRenameFailed)
	}
	if !ok {
		// A resumed plan may have staged the file without recording it.
		staged, err := exists(dst)
		if err != nil {
			return fsError("stage", dst, err, KindRenameFailed)
		}
		if !staged {
			return &Error{Kind: KindNotFound, Op: "stage", Path: src, Err: errors.New("file disappeared before staging")}
		}
	} else if err := renameNoReplace(src, dst); err != nil {
		return fsError("stage", src, err, KindRenameFailed)
	}

	log.Debug("staged file", "from", step.Original, "to", step.Staged)
	return r.mark(ctx, plan, i, StateStaged)
}

// finalize moves a staged step to its final name.
func (r *Renamer) finalize(ctx context.Context, log logger.Logger, plan *Plan, i int) error {
	step := &plan.Steps[i]
	if step.State != StateStaged {
		return nil
	}
	src := filepath.Join(plan.Dir, step.Staged)
	dst := filepath.Join(plan.Dir, step.Final)

	if err := checkCanceled(ctx, "finalize", src); err != nil {
		return err
	}

	ok, err := exists(src)
	if err != nil {
		return fsError("finalize", src, err, KindRenameFailed)
	}
	if !ok {
		done, err := exists(dst)
		if err != nil {
			return fsError("finalize", dst, err, KindRenameFailed)
		}
		if !done {
			return &Error{Kind: KindNotFound, Op: "finalize", Path: src, Err: errors.New("staged file disappeared")}
		}
	} else if err := renameNoReplace(src, dst); err != nil {
		return fsError("finalize", src, err, KindRenameFailed)
	}

	log.Debug("renamed file", "from", step.Original, "to", step.Final)
	return r.mark(ctx, plan, i, StateDone)
}

func (r *Renamer) mark(ctx context.Context, plan *Plan, i int, state StepState) error {
	plan.Steps[i].State = state
	if r.recorder == nil {
		return nil
	}
	if err := r.recorder.Mark(ctx, i, state); err != nil {
		return fmt.Errorf("failed to record step %d: %w", plan.Steps[i].Index, err)
	}
	return nil
}

func checkCanceled(ctx context.Context, op, path string) error {
	if err := ctx.Err(); err != nil {
		return &Error{Kind: KindCanceled, Op: op, Path: path, Err: err}
	}
	return nil
}
