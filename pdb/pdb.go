// This is the upper level for reading PDB files.
// Decide if a file is compressed or not, and what format
// we are going to read. Only the old, column based PDB format is read.
// mmCIF files are recognised so we can say something sensible.

package pdb

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/edsrzf/mmap-go"

	"github.com/andrew-torda/hastruct/pdb/cmmn"
	"github.com/andrew-torda/hastruct/pdb/zwrap"
)

const (
	oldFmt byte = iota
	mmcifFmt
	unkFmt
)

// comparefirst says if two words are the same, looking at
// the length of the shorter
func comparefirst(s, t string) bool {
	l := len(s)
	if len(t) < l {
		l = len(t)
	}
	return l > 0 && s[:l] == t[:l]
}

// lookInData guesses from the first lines if we have old PDB format
// or mmcif.
func lookInData(b []byte) byte {
	pdbWords := []string{"HEADER", "COMPND", "SOURCE", "REMARK", "SEQRES", "HETATM", "ATOM  ", "MODEL ", "CRYST1"}
	mmcifWords := []string{"data_", "loop_", "_entry.id"}

	const maxTestLines = 5000
	scnnr := bufio.NewScanner(bytes.NewReader(b))
	for i := 0; scnnr.Scan() && i < maxTestLines; i++ {
		s := scnnr.Text()
		if len(s) < 4 {
			continue
		}
		for _, w := range mmcifWords {
			if comparefirst(s, w) {
				return mmcifFmt
			}
		}
		for _, w := range pdbWords {
			if comparefirst(s, w) {
				return oldFmt
			}
		}
	}
	return unkFmt
}

// oldOrMmcif decides what format we will use. It looks at the file name
// first and, if that does not help, peeks inside.
// We cannot use the function from filepath to get the file type,
// since it will return .gz if we feed it a.pdb.gz.
func oldOrMmcif(fname string, b []byte) byte {
	s := filepath.Base(fname)
	if i := strings.IndexByte(s, '.'); i != -1 {
		s = strings.ToLower(s[i+1:]) // change .ent to ent
		switch {
		case strings.Contains(s, "cif"):
			return mmcifFmt
		case strings.Contains(s, "pdb") || strings.Contains(s, "ent"):
			return oldFmt
		}
	}
	return lookInData(b)
}

// mapFile maps a file into memory. The caller has to Unmap.
func mapFile(fname string) (mmap.MMap, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	fi, err := fp.Stat()
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", fname)
	}
	if fi.Size() == 0 {
		return nil, fmt.Errorf("%s is empty", fname)
	}
	return mmap.Map(fp, mmap.RDONLY, 0)
}

// ReadFile reads a PDB file, which may be gzipped. The structure ID is
// taken from the HEADER record or, if there is none, from the file name.
func ReadFile(fname string) (*cmmn.Structure, error) {
	mm, err := mapFile(fname)
	if err != nil {
		return nil, err
	}
	defer mm.Unmap()

	rdr, err := zwrap.WrapMaybe(mm)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	defer rdr.Close()

	var b []byte = mm
	if zwrap.IsGzip(mm) { // need the uncompressed text to guess format
		if b, err = io.ReadAll(rdr); err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", fname, err)
		}
	}
	switch oldOrMmcif(strings.TrimSuffix(fname, ".gz"), b) {
	case mmcifFmt:
		return nil, errors.New(fname + ": mmCIF format, convert it to PDB format first")
	case unkFmt:
		return nil, errors.New(fname + ": cannot recognise format")
	}

	s, err := Read(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	if s.ID == "" {
		s.ID = idFromName(fname)
	}
	return s, nil
}

// idFromName turns /x/y/pdb4o5n.ent.gz or /x/4o5n.pdb into 4o5n
func idFromName(fname string) string {
	s := filepath.Base(fname)
	if i := strings.IndexByte(s, '.'); i > 0 {
		s = s[:i]
	}
	if len(s) == 7 && strings.HasPrefix(s, "pdb") {
		s = s[3:]
	}
	return s
}
