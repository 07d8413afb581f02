package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// validateReorder checks that the requested ID list is a permutation
// of the existing set: same IDs, each exactly once. It returns a
// human-readable description of the mismatch, or "" when valid.
func validateReorder(existing, requested []uuid.UUID) string {
	var problems []string

	seen := make(map[uuid.UUID]int, len(requested))
	for _, id := range requested {
		seen[id]++
	}
	for id, n := range seen {
		if n > 1 {
			problems = append(problems, fmt.Sprintf("duplicate id %s", id))
		}
	}

	existingSet := make(map[uuid.UUID]struct{}, len(existing))
	for _, id := range existing {
		existingSet[id] = struct{}{}
	}
	for id := range seen {
		if _, ok := existingSet[id]; !ok {
			problems = append(problems, fmt.Sprintf("unknown id %s", id))
		}
	}
	for _, id := range existing {
		if _, ok := seen[id]; !ok {
			problems = append(problems, fmt.Sprintf("missing id %s", id))
		}
	}

	return strings.Join(problems, "; ")
}
