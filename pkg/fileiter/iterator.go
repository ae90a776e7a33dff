package fileiter

import (
	"bufio"
	"bytes"
	"io"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

type Iterator interface {
	// Next returns the next line, or nil at the end of input.
	Next() ([]byte, error)
}

const (
	bufSz = 1024 * 1024
	// lines longer than this are dropped
	maxLineSz = 16 * bufSz
)

type readerIterator struct {
	r       *bufio.Reader
	line    []byte
	maxSize int
	skipped uint64
}

// NewWithReader iterates over the lines of r without their line endings.
// Ill-formed UTF-8 is replaced with U+FFFD and over-long lines are skipped,
// so a single bad line never stops the scan.
func NewWithReader(r io.Reader) Iterator {
	return newReaderIterator(r, bufSz, maxLineSz)
}

func newReaderIterator(r io.Reader, size, maxSize int) *readerIterator {
	return &readerIterator{
		r:       bufio.NewReaderSize(transform.NewReader(r, runes.ReplaceIllFormed()), size),
		line:    make([]byte, 0, size),
		maxSize: maxSize,
	}
}

func (it *readerIterator) Next() ([]byte, error) {
	it.line = it.line[:0]
	tooLong := false
	for {
		chunk, err := it.r.ReadSlice('\n')
		if !tooLong {
			if len(it.line)+len(chunk) > it.maxSize+1 {
				tooLong = true
				it.line = it.line[:0]
			} else {
				it.line = append(it.line, chunk...)
			}
		}
		switch {
		case err == bufio.ErrBufferFull:
			continue
		case err == io.EOF:
			if tooLong {
				it.skipped++
			}
			if tooLong || len(it.line) == 0 {
				return nil, nil
			}
			return trimEOL(it.line), nil
		case err != nil:
			return nil, err
		}
		if tooLong {
			it.skipped++
			tooLong = false
			continue
		}
		return trimEOL(it.line), nil
	}
}

// Skipped is the number of over-long lines dropped so far.
func (it *readerIterator) Skipped() uint64 {
	return it.skipped
}

func trimEOL(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte{'\n'})
	return bytes.TrimSuffix(line, []byte{'\r'})
}

type sliceIterator struct {
	lines [][]byte
}

// NewWithLines iterates over lines already in memory.
func NewWithLines(lines [][]byte) Iterator {
	return &sliceIterator{lines: lines}
}

func (s *sliceIterator) Next() ([]byte, error) {
	if len(s.lines) == 0 {
		return nil, nil
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	if line == nil {
		line = []byte{}
	}
	return line, nil
}
