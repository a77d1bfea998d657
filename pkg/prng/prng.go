package prng

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"

	"github.com/zeebo/blake3"
)

// Source is a uniform source of 64 random bits.
// *math/rand/v2.Rand satisfies it directly, which is handy in tests.
// Sources are not safe for concurrent use.
type Source interface {
	Uint64() uint64
}

// Intn returns a uniformly distributed integer in [0, n).
// It uses the multiply-high reduction and rejects the
// low words that would bias the result, so every value in
// the range is exactly as likely as any other.
// Intn panics if n <= 0.
func Intn(src Source, n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("prng: invalid bound %d", n))
	}

	var bound = uint64(n)
	hi, lo := bits.Mul64(src.Uint64(), bound)
	if lo < bound {
		// -bound % bound == 2^64 mod bound
		thresh := -bound % bound
		for lo < thresh {
			hi, lo = bits.Mul64(src.Uint64(), bound)
		}
	}

	return int(hi)
}

// reader pulls 8 bytes at a time out of an io.Reader
type reader struct {
	r   io.Reader
	buf [8]byte
}

// NewReader returns a Source drawing its bits from r.
// Source has no error path, so a failing read panics.
func NewReader(r io.Reader) Source {
	return &reader{r: r}
}

func (s *reader) Uint64() uint64 {
	if _, err := io.ReadFull(s.r, s.buf[:]); err != nil {
		panic(fmt.Sprintf("prng: failed to read random bits: %v", err))
	}
	return binary.BigEndian.Uint64(s.buf[:])
}

// NewCrypto returns a Source backed by the operating system CSPRNG.
func NewCrypto() Source {
	return NewReader(rand.Reader)
}

// NewDRBG returns a deterministic random bit generator: the extendable
// output of blake3 keyed by seed. Two generators built from the same seed
// produce the same stream.
func NewDRBG(seed []byte) Source {
	h := blake3.New()
	// Hasher.Write never fails
	h.Write(seed)

	return NewReader(h.Digest())
}

// NewSeeded is NewDRBG over the big endian bytes of seed.
func NewSeeded(seed uint64) Source {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], seed)
	return NewDRBG(b[:])
}
