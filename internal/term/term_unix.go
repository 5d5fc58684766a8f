// Copyright (c) 2026 Michael D Henderson. All rights reserved.

//go:build linux || darwin || freebsd || netbsd || openbsd

package term

import "golang.org/x/sys/unix"

// isTerminal reports whether fd is a terminal by asking the kernel for
// its termios settings: that ioctl only succeeds on a tty.
func isTerminal(fd uintptr) bool {
	_, err := unix.IoctlGetTermios(int(fd), ioctlGetTermios)
	return err == nil
}
