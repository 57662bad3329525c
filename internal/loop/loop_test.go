package loop

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestRunQuitsOnCtrlC(t *testing.T) {
	var out bytes.Buffer
	done := make(chan error, 1)

	go func() {
		done <- Run(bufio.NewReader(strings.NewReader("\x03")), &out, Options{
			TermSizeFunc: func() (int, int, error) { return 80, 24, nil },
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after Ctrl-C")
	}

	got := out.String()
	if !strings.Contains(got, "\033[?25l") || !strings.Contains(got, "\033[?25h") {
		t.Error("cursor not hidden and restored")
	}
	if !strings.Contains(got, "\033[?1000h") || !strings.Contains(got, "\033[?1000l") {
		t.Error("mouse reporting not enabled and disabled")
	}
}
