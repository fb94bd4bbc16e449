// Package sketch implements the Count-Min Sketch the W-TinyLFU policy uses
// to estimate access frequency without storing a counter per key: four
// depth rows, 4-bit saturating counters packed two to a byte, per-row
// seeds mixed into the hash before masking to the row width, and periodic
// halving ("aging") so the sketch tracks recent frequency rather than
// all-time frequency.
package sketch

import "github.com/gopherlru/evictcache/internal/util"

const (
	depth        = 4
	counterBits  = 4
	counterMax   = 1<<counterBits - 1 // 15
	agingDivisor = 10
)

// row-specific seeds. Fixed rather than randomized: the sketch only needs
// the four rows to be pairwise independent-ish in practice, and fixed seeds
// keep results reproducible across runs.
var seeds = [depth]uint64{
	0x9e3779b97f4a7c15,
	0xc2b2ae3d27d4eb4f,
	0x165667b19e3779f9,
	0x27d4eb2f165667c5,
}

// CountMinSketch estimates per-key access frequency in [0, 15].
type CountMinSketch struct {
	rows   [depth][]byte // each row holds width/2 bytes, two 4-bit counters per byte
	width  uint64        // power of two, number of counters per row
	mask   uint64
	sample uint64 // increments since the last aging pass
	reset  uint64 // aging threshold
}

// New sizes a sketch for the given cache capacity. Width is the next power
// of two at or above capacity.
func New(capacity int) *CountMinSketch {
	if capacity < 1 {
		capacity = 1
	}
	width := util.NextPow2(uint64(capacity))
	s := &CountMinSketch{
		width: width,
		mask:  width - 1,
		reset: width * agingDivisor,
	}
	for i := range s.rows {
		s.rows[i] = make([]byte, (width+1)/2)
	}
	return s
}

func (s *CountMinSketch) index(h uint64, row int) uint64 {
	x := (h + seeds[row]) * seeds[row]
	x += x >> 32
	return x & s.mask
}

func get(row []byte, n uint64) uint8 {
	b := row[n/2]
	if n&1 == 0 {
		return b & 0x0f
	}
	return b >> 4
}

func increment(row []byte, n uint64) bool {
	i := n / 2
	shift := (n & 1) * 4
	v := (row[i] >> shift) & 0x0f
	if v >= counterMax {
		return false
	}
	row[i] += 1 << shift
	return true
}

// age halves every counter in every row, independently per nibble.
// (b>>1)&0x77 shifts both nibbles right by one while preventing the low
// bit of the high nibble from bleeding into the high bit of the low nibble.
func (s *CountMinSketch) age() {
	for r := range s.rows {
		row := s.rows[r]
		for i := range row {
			row[i] = (row[i] >> 1) & 0x77
		}
	}
	s.sample = 0
}

// Increment records one observed access for the key hashed to h, aging the
// whole sketch once the running sample count crosses the reset threshold.
func (s *CountMinSketch) Increment(h uint64) {
	for r := 0; r < depth; r++ {
		increment(s.rows[r], s.index(h, r))
	}
	s.sample++
	if s.sample >= s.reset {
		s.age()
	}
}

// Estimate returns the minimum counter value for h across all rows, the
// standard Count-Min Sketch point estimate.
func (s *CountMinSketch) Estimate(h uint64) uint8 {
	min := uint8(counterMax)
	for r := 0; r < depth; r++ {
		if v := get(s.rows[r], s.index(h, r)); v < min {
			min = v
		}
	}
	return min
}
