// Package linesource turns an MPS file, plain or compressed, into a stream of
// text lines. The parser only depends on the Source interface; the file
// handling and decompression live here.
package linesource

import (
	"bufio"
	"compress/bzip2"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// MaxLineLength bounds a single line. Free-format MPS lines are short in
// practice, but some generators put long names on one line.
const MaxLineLength = 16 << 20

// Source supplies decoded lines. *bufio.Scanner satisfies it.
type Source interface {
	Scan() bool
	Text() string
	Err() error
}

// decompressor wraps a raw file stream for one compressed-file extension.
type decompressor func(r io.Reader) (io.Reader, io.Closer, error)

var decompressors = map[string]decompressor{
	".gz": func(r io.Reader) (io.Reader, io.Closer, error) {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr, nil
	},
	".bz2": func(r io.Reader) (io.Reader, io.Closer, error) {
		return bzip2.NewReader(r), nil, nil
	},
	".zst": func(r io.Reader) (io.Reader, io.Closer, error) {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, closerFunc(func() error { zr.Close(); return nil }), nil
	},
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// decompressorFor picks the decompressor for path's extension, ignoring case.
func decompressorFor(path string) (decompressor, bool) {
	dec, ok := decompressors[strings.ToLower(filepath.Ext(path))]
	return dec, ok
}

// File is a Source reading from an opened file. Close releases the file and
// any decompressor.
type File struct {
	*bufio.Scanner
	path    string
	closers []io.Closer
}

// Open opens path and, when its extension names a compression format, puts
// the matching decompressor in front of the line splitter.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	file := &File{path: path, closers: []io.Closer{f}}

	var r io.Reader = f
	if dec, ok := decompressorFor(path); ok {
		zr, c, err := dec(f)
		if err != nil {
			_ = file.Close()
			return nil, errors.Wrapf(err, "decompress %s", path)
		}
		r = zr
		if c != nil {
			file.closers = append(file.closers, c)
		}
	}
	file.Scanner = New(r)
	return file, nil
}

// Path returns the path the file was opened from.
func (f *File) Path() string { return f.path }

// Close closes the decompressor and the underlying file, innermost first.
func (f *File) Close() error {
	var first error
	for i := len(f.closers) - 1; i >= 0; i-- {
		if err := f.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	f.closers = nil
	return first
}

// New returns a line scanner over r that accepts lines up to MaxLineLength.
func New(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	return s
}

// FromString returns a Source over an in-memory text.
func FromString(text string) *bufio.Scanner {
	return New(strings.NewReader(text))
}
