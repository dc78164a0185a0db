package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	tests := []struct {
		name   string
		files  map[string]string
		check  func(t *testing.T, r *Report)
		normal bool
	}{
		{
			name:   "empty directory",
			files:  map[string]string{Marker: ""},
			normal: true,
			check: func(t *testing.T, r *Report) {
				assert.Equal(t, 0, r.Total)
			},
		},
		{
			name:   "contiguous",
			files:  map[string]string{"cat1.jpg": "", "cat2.png": "", "cat3": "", Marker: ""},
			normal: true,
		},
		{
			name:  "gap",
			files: map[string]string{"cat1.jpg": "", "cat3.jpg": ""},
			check: func(t *testing.T, r *Report) {
				assert.Equal(t, []int{2}, r.Missing)
				assert.Equal(t, []string{"cat3.jpg"}, r.Foreign)
			},
		},
		{
			name:  "duplicate index",
			files: map[string]string{"cat1.jpg": "", "cat1.png": "", "cat2.jpg": ""},
			check: func(t *testing.T, r *Report) {
				assert.Equal(t, []int{1}, r.Duplicates)
				assert.Equal(t, []int{3}, r.Missing)
			},
		},
		{
			name:  "foreign and zero padded",
			files: map[string]string{"cat1.jpg": "", "cat02.jpg": "", "dog.jpg": ""},
			check: func(t *testing.T, r *Report) {
				assert.ElementsMatch(t, []string{"cat02.jpg", "dog.jpg"}, r.Foreign)
			},
		},
		{
			name:  "denormalized extension",
			files: map[string]string{"cat1.JPEG": ""},
			check: func(t *testing.T, r *Report) {
				assert.Equal(t, []string{"cat1.JPEG"}, r.Denormalized)
			},
		},
		{
			name:  "leftover staged file",
			files: map[string]string{"cat1.jpg": "", "0f8fad5b-d9cb-469f-a165-70867728950e.jpg": ""},
			check: func(t *testing.T, r *Report) {
				assert.Equal(t, []string{"0f8fad5b-d9cb-469f-a165-70867728950e.jpg"}, r.Staged)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFiles(t, dir, tt.files)

			report, err := Verify(dir, "cat")
			require.NoError(t, err)
			assert.Equal(t, tt.normal, report.Normalized(), "%+v", report)
			if tt.check != nil {
				tt.check(t, report)
			}
		})
	}
}

func TestVerify_InvalidPrefix(t *testing.T) {
	_, err := Verify(t.TempDir(), "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
