package brokenio_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/andrew-torda/hastruct/brokenio"
)

const longstring = "0123456789012345678901234567890123456789"

func TestNeverFails(t *testing.T) {
	b, err := io.ReadAll(brokenio.NewReader(strings.NewReader(longstring)))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != longstring {
		t.Errorf("got %q", b)
	}
}

func TestFailAfter(t *testing.T) {
	for _, n := range []int{0, 1, 7, 39} {
		r := brokenio.NewReader(strings.NewReader(longstring)).SetFailAfter(n)
		b, err := io.ReadAll(r)
		if !errors.Is(err, brokenio.ErrBroken) {
			t.Errorf("n %d: want ErrBroken, got %v", n, err)
		}
		if string(b) != longstring[:n] {
			t.Errorf("n %d: got %q", n, b)
		}
		if _, nByte := r.Stats(); nByte != n {
			t.Errorf("n %d: stats say %d bytes", n, nByte)
		}
	}
	// failure point beyond the end is never reached
	r := brokenio.NewReader(strings.NewReader(longstring)).SetFailAfter(1000)
	if _, err := io.ReadAll(r); err != nil {
		t.Error(err)
	}
}

func TestProbFail(t *testing.T) {
	r := brokenio.NewReader(strings.NewReader(longstring)).SetProbFail(1)
	if _, err := io.ReadAll(r); !errors.Is(err, brokenio.ErrBroken) {
		t.Error("probability 1 should always fail, got", err)
	}
	r = brokenio.NewReader(strings.NewReader(longstring)).SetProbFail(0)
	if _, err := io.ReadAll(r); err != nil {
		t.Error("probability 0 should never fail, got", err)
	}
}
