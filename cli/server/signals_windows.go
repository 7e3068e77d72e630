//go:build windows

package server

import "syscall"

// sighup triggers a config reload (log level only). Doesn't really
// matter on Windows, which can't send it, but keeps the signal set
// portable across build tags.
const sighup = syscall.SIGHUP
