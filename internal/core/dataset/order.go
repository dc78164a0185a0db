package dataset

import (
	"fmt"
	"strings"
)

// SortOrder decides how eligible files are ranked before numbering.
type SortOrder string

const (
	// SortLexical compares names byte by byte, so "B.JPEG" < "a.png" and
	// "cat10.jpg" < "cat2.jpg".
	SortLexical SortOrder = "lexical"
	// SortNatural compares runs of decimal digits by numeric value, so
	// "cat2.jpg" < "cat10.jpg". Ties fall back to byte order.
	SortNatural SortOrder = "natural"
)

// ParseSortOrder accepts "lexical", "natural" or "" (lexical).
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortLexical:
		return SortLexical, nil
	case SortNatural:
		return SortNatural, nil
	default:
		return "", &Error{Kind: KindInvalidArgument, Op: "sort", Err: fmt.Errorf("unknown sort order %q", s)}
	}
}

// Compare returns -1, 0 or +1 ordering a before, equal to, or after b.
func (o SortOrder) Compare(a, b string) int {
	if o == SortNatural {
		if c := naturalCompare(a, b); c != 0 {
			return c
		}
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func naturalCompare(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			si := i
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			sj := j
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na := strings.TrimLeft(a[si:i], "0")
			nb := strings.TrimLeft(b[sj:j], "0")
			if len(na) != len(nb) {
				if len(na) < len(nb) {
					return -1
				}
				return 1
			}
			if c := strings.Compare(na, nb); c != 0 {
				return c
			}
			continue
		}
		if a[i] != b[j] {
			if a[i] < b[j] {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case len(a)-i < len(b)-j:
		return -1
	case len(a)-i > len(b)-j:
		return 1
	}
	return 0
}
