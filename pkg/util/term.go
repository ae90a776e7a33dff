package util

import (
	"os"

	"golang.org/x/sys/unix"
)

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd int) bool {
	_, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	return err == nil
}

func StdoutIsTerminal() bool {
	return IsTerminal(int(os.Stdout.Fd()))
}

func StderrIsTerminal() bool {
	return IsTerminal(int(os.Stderr.Fd()))
}
