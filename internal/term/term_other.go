// Copyright (c) 2026 Michael D Henderson. All rights reserved.

//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package term

// isTerminal has no termios ioctl on these platforms (notably windows,
// which uses a console API instead); treat them as never a terminal so
// color defaults off instead of guessing.
func isTerminal(fd uintptr) bool {
	return false
}
