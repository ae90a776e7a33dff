package util

import (
	"errors"
	"os"
	"runtime"
	"runtime/pprof"
)

// RunCPUProfile runs fn while writing a CPU profile to filename.
func RunCPUProfile(filename string, fn func() error) (err error) {
	var f *os.File
	f, err = os.Create(filename)
	if err != nil {
		return
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err = pprof.StartCPUProfile(f); err != nil {
		return
	}
	defer pprof.StopCPUProfile()
	return fn()
}

func MemProfile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	runtime.GC()
	return pprof.Lookup("allocs").WriteTo(f, 0)
}
