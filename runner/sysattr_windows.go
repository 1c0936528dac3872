//go:build windows

package runner

import "syscall"

func defaultSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{}
}
