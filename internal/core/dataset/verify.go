package dataset

import (
	"strconv"
	"strings"

	"github.com/aki/dsrename/internal/core/id"
)

// Report describes how far a directory is from its final form.
type Report struct {
	Dir    string `json:"dir"`
	Prefix string `json:"prefix"`
	Total  int    `json:"total"`
	// Staged lists leftover intermediate names from an interrupted run.
	Staged []string `json:"staged,omitempty"`
	// Foreign lists names that are not <prefix><n><ext>.
	Foreign []string `json:"foreign,omitempty"`
	// Denormalized lists prefixed names whose extension is not normalized.
	Denormalized []string `json:"denormalized,omitempty"`
	Missing      []int    `json:"missing,omitempty"`
	Duplicates   []int    `json:"duplicates,omitempty"`
}

// Normalized reports whether the directory holds exactly <prefix>1..N.
func (r *Report) Normalized() bool {
	return len(r.Staged) == 0 && len(r.Foreign) == 0 && len(r.Denormalized) == 0 &&
		len(r.Missing) == 0 && len(r.Duplicates) == 0
}

// Verify inspects dir without modifying it.
func Verify(dir, prefix string) (*Report, error) {
	if err := ValidatePrefix(prefix); err != nil {
		return nil, err
	}
	names, err := ListEligible(dir, SortNatural)
	if err != nil {
		return nil, err
	}

	report := &Report{Dir: dir, Prefix: prefix, Total: len(names)}
	seen := make(map[int]int, len(names))

	for _, name := range names {
		stem, ext := splitExt(name)
		if id.IsUUID(stem) {
			report.Staged = append(report.Staged, name)
			continue
		}
		n, ok := parseIndex(stem, prefix)
		if !ok || n > len(names) {
			report.Foreign = append(report.Foreign, name)
			continue
		}
		if ext != NormalizeExt(name) {
			report.Denormalized = append(report.Denormalized, name)
		}
		seen[n]++
		if seen[n] == 2 {
			report.Duplicates = append(report.Duplicates, n)
		}
	}

	for n := 1; n <= len(names); n++ {
		if seen[n] == 0 {
			report.Missing = append(report.Missing, n)
		}
	}
	return report, nil
}

// parseIndex extracts n from "<prefix><n>". Leading zeros are rejected
// because the renamer never produces them.
func parseIndex(stem, prefix string) (int, bool) {
	digits, ok := strings.CutPrefix(stem, prefix)
	if !ok || digits == "" || digits[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i]) {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
