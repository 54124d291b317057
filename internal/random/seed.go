// Package random provides seeds for battle random sources.
//
// Battles are deterministic given a seed. When a caller does not pick one,
// NewSeed draws it from crypto/rand so that runs differ.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a non-zero random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	for {
		if _, err := crand.Read(b[:]); err != nil {
			return 0, fmt.Errorf("read random seed: %w", err)
		}
		if seed := int64(binary.LittleEndian.Uint64(b[:])); seed != 0 {
			return seed, nil
		}
	}
}

// Derive returns the seed of the index-th battle in a run seeded with base.
func Derive(base int64, index int) int64 {
	return base + int64(index)*0x9E3779B9
}
