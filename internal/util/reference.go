package util

import (
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"
)

// ReferenceFromUUID converts a UUID to a Payone merchant reference.
// Payone limits "reference" to 20 characters, so the 36-character UUID is
// folded with FNV-1a 64-bit. The same UUID always yields the same reference.
// The result is numeric and at most 20 digits.
func ReferenceFromUUID(id uuid.UUID) string {
	h := fnv.New64a()
	h.Write(id[:])
	return fmt.Sprintf("%d", h.Sum64())
}
