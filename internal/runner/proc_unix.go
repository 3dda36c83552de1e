//go:build !windows

package runner

import (
	"os"
	"syscall"
)

// captured children get their own process group so a cancel reaches any
// helpers they spawned as well
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid: true,
	}
}

func killProcess(pid int) error {
	return syscall.Kill(-pid, syscall.SIGTERM)
}

func terminate(p *os.Process) error {
	return p.Signal(syscall.SIGTERM)
}

// signalExitCode follows the shell convention of 128 plus the signal number.
func signalExitCode(state *os.ProcessState) int {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return 1
}
