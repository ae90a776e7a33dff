package util

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// Stdin is the file name that reads standard input.
const Stdin = "-"

type filteredReader struct {
	cmd *exec.Cmd
	src io.Closer
	r   io.ReadCloser
}

func (fr *filteredReader) Read(p []byte) (n int, err error) {
	return fr.r.Read(p)
}

func (fr *filteredReader) Close() error {
	return errors.Join(fr.r.Close(), fr.cmd.Wait(), fr.src.Close())
}

func filterByCommand(r io.ReadCloser, args []string) (io.ReadCloser, error) {
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = r
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &filteredReader{cmd: cmd, src: r, r: stdout}, nil
}

type filterFunc func(r io.ReadCloser) (io.ReadCloser, error)

// Rotated mail logs are usually compressed by logrotate.
var fileTypes = map[string]filterFunc{
	".gz": func(r io.ReadCloser) (io.ReadCloser, error) {
		return filterByCommand(r, []string{"gzip", "-cd"})
	},
	".xz": func(r io.ReadCloser) (io.ReadCloser, error) {
		return filterByCommand(r, []string{"xz", "-cd", "-T", "0"})
	},
	".zst": func(r io.ReadCloser) (io.ReadCloser, error) {
		return filterByCommand(r, []string{"zstd", "-cd", "-T0"})
	},
}

// OpenFile opens filename for reading, decompressing known extensions.
// Closing the result also closes the underlying file.
func OpenFile(filename string) (io.ReadCloser, error) {
	if filename == Stdin {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	if filter, ok := fileTypes[filepath.Ext(filename)]; ok {
		r, err := filter(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return r, nil
	}
	return f, nil
}

// ReadSize is the number of bytes OpenFile will yield, or -1 when that is
// not known in advance.
func ReadSize(filename string) int64 {
	if filename == Stdin {
		return -1
	}
	if _, ok := fileTypes[filepath.Ext(filename)]; ok {
		return -1
	}
	fi, err := os.Stat(filename)
	if err != nil || !fi.Mode().IsRegular() {
		return -1
	}
	return fi.Size()
}
