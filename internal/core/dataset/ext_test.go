package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeExt(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"photo.jpg", ".jpg"},
		{"photo.jpeg", ".jpg"},
		{"B.JPEG", ".jpg"},
		{"a.PNG", ".png"},
		{"a.Png", ".png"},
		{"archive.tar.gz", ".gz"},
		{"README", ""},
		{".keep", ""},
		{".hidden", ""},
		{"trailing.", ""},
		{"x.jpeg.bak", ".bak"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeExt(tt.name))
		})
	}
}

func TestSplitExt(t *testing.T) {
	stem, ext := splitExt("cat12.JPG")
	assert.Equal(t, "cat12", stem)
	assert.Equal(t, ".JPG", ext)

	stem, ext = splitExt(".keep")
	assert.Equal(t, ".keep", stem)
	assert.Equal(t, "", ext)
}
