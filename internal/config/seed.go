package config

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Seed turns a seed phrase into a 64-bit random seed. The same phrase always
// yields the same seed; an empty phrase yields a fresh random one.
func Seed(phrase string) uint64 {
	if phrase == "" {
		id := uuid.New()
		return xxhash.Sum64(id[:])
	}
	return xxhash.Sum64String(phrase)
}

// RunSeeds derives the pair of PCG seeds for run number n of a batch.
func RunSeeds(base uint64, n int) (uint64, uint64) {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], base)
	binary.LittleEndian.PutUint64(buf[8:], uint64(n))

	d := xxhash.New()
	_, _ = d.Write(buf[:])
	hi := d.Sum64()
	_, _ = d.WriteString("stream")
	return hi, d.Sum64()
}
