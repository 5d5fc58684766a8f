// Copyright (c) 2026 Michael D Henderson. All rights reserved.

//go:build linux

package term

import "golang.org/x/sys/unix"

const ioctlGetTermios = unix.TCGETS
