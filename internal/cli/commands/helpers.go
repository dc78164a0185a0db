package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aki/dsrename/internal/cli/ui"
	"github.com/aki/dsrename/internal/core/dataset"
	"github.com/aki/dsrename/internal/core/dirlock"
)

// commandContext returns the command context cancelled on SIGINT or SIGTERM.
// Renames check it between steps, so an interrupt stops before the next one.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

// formatter returns a formatter of the selected --output kind bound to the
// command's streams.
func formatter(cmd *cobra.Command) ui.Formatter {
	if ui.GlobalFormatter.IsJSON() {
		return ui.NewJSONFormatter(cmd.OutOrStdout(), cmd.ErrOrStderr())
	}
	return ui.NewPrettyFormatter(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// output writes data as JSON when --output json is active and the text
// rendered by pretty otherwise.
func output(cmd *cobra.Command, data interface{}, pretty func(w io.Writer)) error {
	f := formatter(cmd)
	if f.IsJSON() {
		return f.Output(data)
	}
	var sb strings.Builder
	pretty(&sb)
	return f.Output(sb.String())
}

func absDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid directory %q: %w", dir, err)
	}
	return abs, nil
}

func newRenamer(order dataset.SortOrder, opts ...dataset.Option) *dataset.Renamer {
	return dataset.NewRenamer(append([]dataset.Option{
		dataset.WithLogger(appLogger),
		dataset.WithSortOrder(order),
	}, opts...)...)
}

// newLocker returns the configured directory locker, or nil when locking is
// disabled and force is false.
func newLocker(force bool) *dirlock.Locker {
	if !cfg.Lock.Enabled && !force {
		return nil
	}
	return dirlock.New(cfg.Lock.Dir, cfg.Lock.Timeout)
}

// lockDir takes the advisory lock for dir when locking is enabled. The
// returned release function is always safe to call.
func lockDir(ctx context.Context, dir string, force bool) (func(), error) {
	locker := newLocker(force)
	if locker == nil {
		return func() {}, nil
	}
	lock, err := locker.Acquire(ctx, dir)
	if err != nil {
		return nil, err
	}
	appLogger.Debug("acquired directory lock", "dir", dir)
	return func() {
		if err := lock.Release(); err != nil {
			appLogger.Warn("failed to release directory lock", "dir", dir, "error", err)
		}
	}, nil
}

// journalDir is where journals go when journaling is on.
func journalDir() string {
	if cfg.Journal.Dir != "" {
		return cfg.Journal.Dir
	}
	if cache, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cache, "dsrename", "journal")
	}
	return filepath.Join(os.TempDir(), "dsrename-journal")
}
