package log

import (
	"errors"
	"testing"
)

func TestInfo(t *testing.T) {
	Info("hello %v", "abc")
	Info("hello %v %v", "abc", errors.New("abc"))
}

func TestSetLogger(t *testing.T) {
	SetLogger(nil)
	if Info == nil {
		t.Fatal("nil logger should be ignored")
	}
	SetLogger(NewConsoleLogger())
}
