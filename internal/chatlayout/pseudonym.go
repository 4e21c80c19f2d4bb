package chatlayout

import (
	"crypto/sha1"
	"strconv"
	"time"
)

// bubbleBabbleVowels and bubbleBabbleConsonants are the fixed alphabets
// of the bubble-babble encoding (Huima's checksum-readable encoding,
// as used by OpenSSH's ssh-keygen -B). No library in the retrieval
// pack implements this narrow, fully-specified encoding (see
// DESIGN.md); it is reproduced here directly from the algorithm.
var (
	bubbleBabbleVowels     = [6]byte{'a', 'e', 'i', 'o', 'u', 'y'}
	bubbleBabbleConsonants = [17]byte{'b', 'c', 'd', 'f', 'g', 'h', 'k', 'l', 'm', 'n', 'p', 'r', 's', 't', 'v', 'z', 'x'}
)

// bubbleBabble encodes data into the "xexax"-style pronounceable
// checksum string.
func bubbleBabble(data []byte) string {
	rounds := len(data)/2 + 1
	var seed uint = 1
	out := make([]byte, 0, rounds*6+2)
	out = append(out, 'x')

	for i := 0; i < rounds; i++ {
		if i+1 < rounds || len(data)%2 != 0 {
			b0 := uint(data[2*i])
			out = append(out,
				bubbleBabbleVowels[(((b0>>6)&3)+seed)%6],
				bubbleBabbleConsonants[(b0>>2)&15],
				bubbleBabbleVowels[((b0&3)+seed/6)%6],
			)
			if i+1 < rounds {
				b1 := uint(data[2*i+1])
				out = append(out, bubbleBabbleConsonants[(b1>>4)&15], '-', bubbleBabbleConsonants[b1&15])
				seed = (seed*5 + b0*7 + b1) % 36
			}
		} else {
			out = append(out, bubbleBabbleVowels[seed%6], 'x', bubbleBabbleVowels[seed/6])
		}
	}
	out = append(out, 'x')
	return string(out)
}

// Pseudonymizer replaces chat author names with a stable, unlinkable
// handle for the lifetime of one process (spec.md §4.6 step 1).
type Pseudonymizer struct {
	saltNanos int64
}

// NewPseudonymizer seeds the salt once, at startup.
func NewPseudonymizer() *Pseudonymizer {
	return &Pseudonymizer{saltNanos: time.Now().UnixNano()}
}

// Pseudonymize returns the first 11 characters of the bubble-babble
// encoding of SHA-1(name ++ salt).
func (p *Pseudonymizer) Pseudonymize(name string) string {
	sum := sha1.Sum([]byte(name + strconv.FormatInt(p.saltNanos, 10)))
	encoded := bubbleBabble(sum[:])
	if len(encoded) > 11 {
		return encoded[:11]
	}
	return encoded
}
