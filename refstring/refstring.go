// Package refstring converts between typed reference strings and page
// sequences, and generates sample reference strings.
package refstring

import (
	"strconv"
	"strings"
)

// Parse turns a comma-separated list such as "7, 0, 1" into page numbers.
// Tokens that are empty or not integers are dropped.
func Parse(s string) []int {
	refs := []int{}

	for _, token := range strings.Split(s, ",") {
		page, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			continue
		}

		refs = append(refs, page)
	}

	return refs
}

// Format joins page numbers into the comma-separated form Parse accepts.
func Format(refs []int) string {
	tokens := make([]string, len(refs))
	for i, page := range refs {
		tokens[i] = strconv.Itoa(page)
	}

	return strings.Join(tokens, ",")
}
