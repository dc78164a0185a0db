// Package classes works on a dataset root: one directory per class label,
// each holding that class's images named <label><n><ext>.
package classes

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aki/dsrename/internal/core/dataset"
)

// DummyImage is written into class directories created by Ensure so the
// training loader never sees an empty class.
const DummyImage = "dummy.png"

const dummySize = 32

// DefaultLabels are the classes of the bird-deterrent camera dataset.
var DefaultLabels = []string{"crow", "squirrel", "rat", "magpie", "bird", "other"}

// Class is one label directory under a dataset root.
type Class struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	Files      int    `json:"files"`
	Normalized bool   `json:"normalized"`
}

// List returns the class directories under root sorted by name. Hidden
// directories are skipped.
func List(root string) ([]Class, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset root %s: %w", root, err)
	}

	var out []Class
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(root, e.Name())
		report, err := dataset.Verify(path, e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to inspect class %s: %w", e.Name(), err)
		}
		out = append(out, Class{
			Name:       e.Name(),
			Path:       path,
			Files:      report.Total,
			Normalized: report.Normalized(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ReadLabels reads one label per line, ignoring blank lines and # comments.
func ReadLabels(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open labels file: %w", err)
	}
	defer f.Close()

	var labels []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		labels = append(labels, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read labels file: %w", err)
	}
	return labels, nil
}

// Ensure creates every missing class directory under root with a black
// placeholder image inside, and returns the labels it created. Existing
// directories are left alone.
func Ensure(root string, labels []string) ([]string, error) {
	var created []string
	for _, label := range labels {
		if err := dataset.ValidatePrefix(label); err != nil {
			return created, fmt.Errorf("invalid class label %q: %w", label, err)
		}
		dir := filepath.Join(root, label)
		if _, err := os.Stat(dir); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return created, fmt.Errorf("failed to stat %s: %w", dir, err)
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return created, fmt.Errorf("failed to create class directory: %w", err)
		}
		if err := writeDummy(filepath.Join(dir, DummyImage)); err != nil {
			return created, err
		}
		created = append(created, label)
	}
	return created, nil
}

func writeDummy(path string) error {
	img := image.NewRGBA(image.Rect(0, 0, dummySize, dummySize))
	for y := 0; y < dummySize; y++ {
		for x := 0; x < dummySize; x++ {
			img.Set(x, y, color.Black)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create placeholder image: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode placeholder image: %w", err)
	}
	return f.Close()
}

// Outcome is the result of normalizing one class.
type Outcome struct {
	Class   Class           `json:"class"`
	Skipped bool            `json:"skipped"`
	Result  *dataset.Result `json:"result,omitempty"`
}

// NormalizeAll renames every class directory that is not yet normalized,
// using the directory name as prefix. It stops at the first failure and
// returns the outcomes completed so far.
func NormalizeAll(ctx context.Context, r *dataset.Renamer, root string) ([]Outcome, error) {
	list, err := List(root)
	if err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, 0, len(list))
	for _, c := range list {
		if c.Normalized {
			outcomes = append(outcomes, Outcome{Class: c, Skipped: true})
			continue
		}
		res, err := r.Rename(ctx, c.Path, c.Name)
		if err != nil {
			return outcomes, fmt.Errorf("class %s: %w", c.Name, err)
		}
		c.Normalized = true
		outcomes = append(outcomes, Outcome{Class: c, Result: res})
	}
	return outcomes, nil
}
