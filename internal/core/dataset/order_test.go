package dataset

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortOrder_Lexical(t *testing.T) {
	names := []string{"photo.jpg", "a.png", "B.JPEG"}
	slices.SortFunc(names, SortLexical.Compare)
	// uppercase sorts before lowercase in byte order
	assert.Equal(t, []string{"B.JPEG", "a.png", "photo.jpg"}, names)

	names = []string{"cat2.jpg", "cat10.jpg", "cat1.jpg"}
	slices.SortFunc(names, SortLexical.Compare)
	assert.Equal(t, []string{"cat1.jpg", "cat10.jpg", "cat2.jpg"}, names)
}

func TestSortOrder_Natural(t *testing.T) {
	names := []string{"cat10.jpg", "cat2.jpg", "cat1.jpg", "cat02.jpg", "B.JPEG", "a.png"}
	slices.SortFunc(names, SortNatural.Compare)
	assert.Equal(t, []string{"B.JPEG", "a.png", "cat1.jpg", "cat02.jpg", "cat2.jpg", "cat10.jpg"}, names)
}

func TestNaturalCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"a", "a", 0},
		{"a2", "a10", -1},
		{"a10", "a2", 1},
		{"a", "a1", -1},
		{"a01", "a1", 0},
		{"img9x", "img10", -1},
		{"b", "a100", 1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, naturalCompare(tt.a, tt.b))
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	o, err := ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, SortLexical, o)

	o, err = ParseSortOrder("Natural")
	require.NoError(t, err)
	assert.Equal(t, SortNatural, o)

	_, err = ParseSortOrder("random")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
