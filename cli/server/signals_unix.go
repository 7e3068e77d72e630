//go:build !windows

package server

import "syscall"

// sighup triggers a config reload (log level only; address book and
// mempool limits are fixed for the life of the process).
const sighup = syscall.SIGHUP
