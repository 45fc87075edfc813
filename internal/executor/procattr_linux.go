//go:build linux

package executor

import "syscall"

// detachedAttr puts the child in its own process group and has the kernel
// SIGKILL it when the forking thread goes away, which includes a crash of
// this process.
func detachedAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true, Pdeathsig: syscall.SIGKILL}
}
