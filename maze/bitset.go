package maze

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"
)

const wordSize = 64

var (
	ErrNegativeIndex = errors.New("negative bit index")
	ErrInvalidBits   = errors.New("invalid bit pattern")
)

// Bitset is an arbitrary-width row of wall flags.
// Bit j set means a wall is present at logical position j.
// The zero value is an empty (all-clear) bitset.
type Bitset struct {
	words []uint64
}

// NewBitset builds a bitset from a sequence of flags, flags[j] becoming bit j.
func NewBitset(flags []bool) Bitset {
	var b Bitset
	for j, set := range flags {
		if set {
			_ = b.Set(j)
		}
	}
	return b
}

// ParseBitset reads the decimal form used by the generator service.
func ParseBitset(decimal string) (Bitset, error) {
	n, ok := new(big.Int).SetString(decimal, 10)
	if !ok || n.Sign() < 0 {
		return Bitset{}, fmt.Errorf("%w: %q", ErrInvalidBits, decimal)
	}

	var b Bitset
	for j := 0; j < n.BitLen(); j++ {
		if n.Bit(j) == 1 {
			_ = b.Set(j)
		}
	}
	return b, nil
}

// Set turns bit i on, growing the storage as needed.
func (b *Bitset) Set(i int) error {
	if i < 0 {
		return ErrNegativeIndex
	}
	w := i / wordSize
	for len(b.words) <= w {
		b.words = append(b.words, 0)
	}
	b.words[w] |= 1 << uint(i%wordSize)
	return nil
}

// Test reports whether bit i is set. Bits beyond the stored width read as unset.
func (b Bitset) Test(i int) (bool, error) {
	if i < 0 {
		return false, ErrNegativeIndex
	}
	w := i / wordSize
	if w >= len(b.words) {
		return false, nil
	}
	return b.words[w]&(1<<uint(i%wordSize)) != 0, nil
}

// has is Test for indexes already known to be non-negative.
func (b Bitset) has(i int) bool {
	set, _ := b.Test(i)
	return set
}

// Truncate clears every bit at or above width.
func (b *Bitset) Truncate(width int) {
	if width <= 0 {
		b.words = nil
		return
	}
	keep := (width + wordSize - 1) / wordSize
	if keep < len(b.words) {
		b.words = b.words[:keep]
	}
	if rem := width % wordSize; rem != 0 && keep <= len(b.words) {
		b.words[keep-1] &= (1 << uint(rem)) - 1
	}
	b.trim()
}

// Len returns the index of the highest set bit plus one.
func (b Bitset) Len() int {
	b.trim()
	if len(b.words) == 0 {
		return 0
	}
	last := len(b.words) - 1
	return last*wordSize + bits.Len64(b.words[last])
}

// Equal compares the set bits of two bitsets regardless of their storage width.
func (b Bitset) Equal(other Bitset) bool {
	n := max(len(b.words), len(other.words))
	for w := 0; w < n; w++ {
		if b.word(w) != other.word(w) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (b Bitset) Clone() Bitset {
	if len(b.words) == 0 {
		return Bitset{}
	}
	words := make([]uint64, len(b.words))
	copy(words, b.words)
	return Bitset{words: words}
}

// String renders the bitset as the decimal integer whose binary digits are its bits.
func (b Bitset) String() string {
	n := new(big.Int)
	for w := len(b.words) - 1; w >= 0; w-- {
		n.Lsh(n, wordSize)
		n.Or(n, new(big.Int).SetUint64(b.words[w]))
	}
	return n.String()
}

func (b Bitset) word(w int) uint64 {
	if w < len(b.words) {
		return b.words[w]
	}
	return 0
}

func (b *Bitset) trim() {
	for len(b.words) > 0 && b.words[len(b.words)-1] == 0 {
		b.words = b.words[:len(b.words)-1]
	}
}
