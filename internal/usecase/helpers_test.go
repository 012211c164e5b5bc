package usecase

import (
	"fmt"
	"sync/atomic"
)

type sequenceIDGenerator struct {
	prefix string
	next   atomic.Int64
}

func newSequenceIDGenerator(prefix string) *sequenceIDGenerator {
	return &sequenceIDGenerator{prefix: prefix}
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("%s-%d", g.prefix, g.next.Add(1)), nil
}

type failingIDGenerator struct{}

func (failingIDGenerator) NewID() (string, error) {
	return "", fmt.Errorf("entropy exhausted")
}
