package socket

import (
	"testing"
)

func TestFailOnPortInUse(t *testing.T) {
	l, err := NewTCPSocket(21234)
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	defer l.Close()
	_, err = NewTCPSocket(21234)
	if err == nil {
		t.Errorf("expected busy port error, but got none")
	}
}

func TestListenerPortRoll(t *testing.T) {
	l, err := NewTCPSocketPortRoll(21234)
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	defer l.Close()
	l2, err := NewTCPSocketPortRoll(21234)
	if err != nil {
		t.Errorf("expected no port error, but got one")
	}
	l2.Close()
}
