//go:build !linux

package executor

import "syscall"

// detachedAttr puts the child in its own process group. Without a parent
// death signal the group watchdog alone covers a crash of this process.
func detachedAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}
