// Package brokenio wraps a reader so that it breaks. It lets tests
// check that read errors get passed back to the caller and are not
// mistaken for the end of the input.
// A reader can be told to fail after a number of bytes, or to fail on
// any read with some probability. A probability of 1 fails every time.
package brokenio

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
)

// ErrBroken is the error returned by a deliberately failed read.
var ErrBroken = errors.New("brokenio: deliberate read failure")

// Reader passes reads through to the reader it wraps, until it decides
// to fail.
type Reader struct {
	rdr       io.Reader
	probFail  float32 // chance of any read failing
	failAfter int     // fail once this many bytes have gone through, -1 means never
	nCalled   int
	nByte     int
}

// NewReader wraps r. Without further settings, it never fails.
func NewReader(r io.Reader) *Reader {
	return &Reader{rdr: r, failAfter: -1}
}

// SetProbFail sets the probability, from 0 to 1, that a read fails.
// It returns the reader, so calls can be chained.
func (r *Reader) SetProbFail(prob float32) *Reader {
	r.probFail = prob
	return r
}

// SetFailAfter makes reads fail once n bytes have been read.
func (r *Reader) SetFailAfter(n int) *Reader {
	r.failAfter = n
	return r
}

// Read reads from the wrapped reader. A read never goes past the
// failure point, so the bytes before it are always delivered.
func (r *Reader) Read(p []byte) (int, error) {
	r.nCalled++
	if r.failAfter >= 0 {
		left := r.failAfter - r.nByte
		if left <= 0 {
			return 0, fmt.Errorf("after %d bytes: %w", r.nByte, ErrBroken)
		}
		if len(p) > left {
			p = p[:left]
		}
	}
	if r.probFail > 0 && rand.Float32() < r.probFail {
		return 0, fmt.Errorf("read %d: %w", r.nCalled, ErrBroken)
	}
	n, err := r.rdr.Read(p)
	r.nByte += n
	return n, err
}

// Stats says how many times Read was called and how many bytes came
// through.
func (r *Reader) Stats() (nCalled, nByte int) { return r.nCalled, r.nByte }
