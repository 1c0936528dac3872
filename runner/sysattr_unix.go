//go:build unix

package runner

import "syscall"

// defaultSysProcAttr puts the child in its own process group so a
// timeout kill reaches any processes it spawned.
func defaultSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid: true,
		Pgid:    0,
	}
}
