package cleaner

import (
	"sort"
	"strconv"
	"strings"
)

// Selection is the result of parsing one line of user index input against
// a catalog of known length. Indices are zero-based, unique and sorted;
// Rejected preserves the raw invalid tokens in input order.
type Selection struct {
	Indices  []int
	Rejected []string
}

// Empty reports whether no valid index was selected.
func (s Selection) Empty() bool {
	return len(s.Indices) == 0
}

// ParseSelection validates a comma-separated list of 1-based indices
// against a catalog of n items. A token is valid iff it parses as a
// positive integer within [1, n]; everything else lands in Rejected.
// A partially bad line never fails: valid tokens are still honored.
func ParseSelection(input string, n int) Selection {
	var sel Selection

	if strings.TrimSpace(input) == "" {
		return sel
	}

	seen := make(map[int]bool)
	for _, raw := range strings.Split(input, ",") {
		token := strings.TrimSpace(raw)

		i, err := strconv.Atoi(token)
		if err != nil || i < 1 || i > n {
			// Rejected tokens are reported exactly as typed.
			sel.Rejected = append(sel.Rejected, raw)
			continue
		}

		idx := i - 1
		if seen[idx] {
			continue
		}
		seen[idx] = true
		sel.Indices = append(sel.Indices, idx)
	}

	sort.Ints(sel.Indices)
	return sel
}

// SelectAll returns the selection covering every index of an n-item
// catalog.
func SelectAll(n int) Selection {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return Selection{Indices: indices}
}
