/*
reference.go - Transaction reference allocation

PURPOSE:
  Produces human-legible, unique transaction references of the form
  "<PREFIX>-<YYYYMMDD>-<6 hex>". The allocator only generates
  candidates; uniqueness is enforced by the storage layer's unique
  index at insert time. A uniqueness violation means "generate a new
  candidate and retry the whole atomic unit", never success. There is
  no check-then-insert pre-flight and no sleep between attempts: the
  random suffix makes collisions negligible and the unique index is
  the single arbiter.

SEE ALSO:
  - engine.go: Drives the bounded retry loop (MaxReferenceAttempts)
*/
package ledger

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// MaxReferenceAttempts bounds the allocation retry loop. Exceeding it
// surfaces ErrReferenceExhausted to the caller.
const MaxReferenceAttempts = 10

// DefaultReferencePrefix is used when no prefix is configured.
const DefaultReferencePrefix = "TXN"

// ReferenceAllocator generates candidate transaction references.
type ReferenceAllocator struct {
	prefix string
	now    func() time.Time
	suffix func() string // 6 uppercase hex chars
}

// NewReferenceAllocator returns an allocator with the given prefix.
// An empty prefix falls back to DefaultReferencePrefix.
func NewReferenceAllocator(prefix string) *ReferenceAllocator {
	if prefix == "" {
		prefix = DefaultReferencePrefix
	}
	return &ReferenceAllocator{
		prefix: prefix,
		now:    time.Now,
		suffix: randomSuffix,
	}
}

// Candidate returns a new reference candidate, e.g. "TXN-20240115-A41F09".
func (a *ReferenceAllocator) Candidate() string {
	return fmt.Sprintf("%s-%s-%s", a.prefix, a.now().UTC().Format("20060102"), a.suffix())
}

func randomSuffix() string {
	var b [3]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// time-derived suffix rather than panic.
		return fmt.Sprintf("%06X", time.Now().UnixNano()&0xFFFFFF)
	}
	return strings.ToUpper(hex.EncodeToString(b[:]))
}
