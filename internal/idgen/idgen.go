package idgen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
)

// Generator mints opaque, collision-resistant identifiers. It is injected
// into the service layer so tests can supply deterministic ids.
type Generator interface {
	NewID() string
}

type randomGenerator struct{}

// New returns the production generator: 16 random bytes, hex encoded.
func New() Generator {
	return randomGenerator{}
}

func (randomGenerator) NewID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

// Sequence is a deterministic generator for tests: prefix-0001, prefix-0002...
type Sequence struct {
	prefix string
	next   uint64
}

func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) NewID() string {
	return fmt.Sprintf("%s-%04d", s.prefix, atomic.AddUint64(&s.next, 1))
}
