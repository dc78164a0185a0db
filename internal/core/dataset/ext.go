package dataset

import "strings"

// splitExt splits name into stem and raw extension. The extension starts at
// the last dot, unless that dot is the first or the last character, in
// which case the name has no extension (".keep", "notes.").
func splitExt(name string) (stem, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return name, ""
	}
	return name[:i], name[i:]
}

// NormalizeExt returns the extension used in the final name for a file:
// lower-cased, with ".jpeg" folded into ".jpg". Names without an extension
// yield "".
func NormalizeExt(name string) string {
	_, ext := splitExt(name)
	ext = strings.ToLower(ext)
	if ext == ".jpeg" {
		return ".jpg"
	}
	return ext
}
