// Package zwrap looks at the start of some data and, if it is gzipped,
// hands back a decompressing reader. Otherwise the data comes back as it
// is. Close closes the decompressor if there is one.
package zwrap

import (
	"bytes"
	"compress/gzip"
	"io"
)

var gzMagic = []byte{0x1f, 0x8b}

// IsGzip says if b starts with the gzip magic number.
func IsGzip(b []byte) bool { return bytes.HasPrefix(b, gzMagic) }

type nopCloser struct{ io.Reader }

func (nopCloser) Close() error { return nil }

// WrapMaybe takes a buffer, typically a file we have mapped into memory,
// and returns a reader. Compressed data is decompressed on the fly.
func WrapMaybe(b []byte) (io.ReadCloser, error) {
	if !IsGzip(b) {
		return nopCloser{bytes.NewReader(b)}, nil
	}
	zrdr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return zrdr, nil
}
