package socket

import (
	"errors"
	"net"
	"os"
	"runtime"
	"syscall"
)

const listenAttempts = 42

// NewTCPSocket creates a TCP socket listener on a given port.
func NewTCPSocket(port int) (*net.TCPListener, error) {
	return net.ListenTCP("tcp", &net.TCPAddr{Port: port})
}

// NewTCPSocketPortRoll creates a TCP socket listener on the next free port.
func NewTCPSocketPortRoll(port int) (*net.TCPListener, error) {
	listener, err := NewTCPSocket(port)
	if err == nil {
		return listener, nil
	}
	if IsPortBusyError(err) {
		for i := port + 1; i < port+listenAttempts; i++ {
			listener, err := NewTCPSocket(i)
			if err == nil {
				return listener, nil
			}
		}
		return nil, errors.New("no available ports")
	}
	return nil, err
}

// IsPortBusyError tests if the given error is one of
// the port busy errors.
func IsPortBusyError(err error) bool {
	if err == nil {
		return false
	}
	var eOsSyscall *os.SyscallError
	if !errors.As(err, &eOsSyscall) {
		return false
	}
	var errErrno syscall.Errno
	if !errors.As(eOsSyscall, &errErrno) {
		return false
	}
	if errErrno == syscall.EADDRINUSE {
		return true
	}
	const WSAEADDRINUSE = 10048
	if runtime.GOOS == "windows" && errErrno == WSAEADDRINUSE {
		return true
	}
	return false
}
