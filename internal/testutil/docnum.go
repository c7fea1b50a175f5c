package testutil

import (
	"fmt"
	"sync"
)

// DocumentNumbers hands out sequential document numbers with a fixed
// prefix, so generated output is byte-identical across runs.
//
// The first call to Next returns "<prefix>-0001". Pass as
// engine.WithDocumentNumber(d.Next).
type DocumentNumbers struct {
	mu     sync.Mutex
	prefix string
	seq    int
}

// NewDocumentNumbers creates a generator with the given prefix. An
// empty prefix defaults to "test-doc".
func NewDocumentNumbers(prefix string) *DocumentNumbers {
	if prefix == "" {
		prefix = "test-doc"
	}
	return &DocumentNumbers{prefix: prefix}
}

// Next returns the next document number in sequence.
func (d *DocumentNumbers) Next() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	return fmt.Sprintf("%s-%04d", d.prefix, d.seq)
}

// Reset restarts the sequence. The next call to Next returns
// "<prefix>-0001" again.
func (d *DocumentNumbers) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq = 0
}
