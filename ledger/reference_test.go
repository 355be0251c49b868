package ledger_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/granary/ledger-engine/ledger"
)

func TestReferenceAllocator_CandidateFormat(t *testing.T) {
	alloc := ledger.NewReferenceAllocator("INV")

	pattern := regexp.MustCompile(`^INV-\d{8}-[0-9A-F]{6}$`)
	for i := 0; i < 100; i++ {
		assert.Regexp(t, pattern, alloc.Candidate())
	}
}

func TestReferenceAllocator_EmptyPrefixFallsBack(t *testing.T) {
	alloc := ledger.NewReferenceAllocator("")
	assert.Regexp(t, `^TXN-\d{8}-[0-9A-F]{6}$`, alloc.Candidate())
}

func TestReferenceAllocator_CandidatesVary(t *testing.T) {
	// 3 random bytes give 16M suffixes; 1000 draws colliding into fewer
	// than 990 distinct values is effectively impossible.
	alloc := ledger.NewReferenceAllocator("TXN")

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		seen[alloc.Candidate()] = true
	}
	assert.Greater(t, len(seen), 990)
}
