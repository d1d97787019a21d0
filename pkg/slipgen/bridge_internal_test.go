package slipgen

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"
)

// exitError runs a command that exits with status 3 to obtain a real
// *exec.ExitError.
func exitError(t *testing.T) error {
	t.Helper()
	err := exec.Command("sh", "-c", "exit 3").Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Skipf("sh unavailable: %v", err)
	}
	return err
}

func expiredContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	t.Cleanup(cancel)
	return ctx
}

func TestClassifyExit_SuccessAfterDeadline(t *testing.T) {
	b := &Bridge{cfg: Config{Timeout: time.Millisecond}}
	stderr := bytes.NewBufferString("")

	if err := b.classifyExit(context.Background(), expiredContext(t), nil, stderr); err != nil {
		t.Errorf("zero exit with an expired deadline = %v, want success", err)
	}
}

func TestClassifyExit(t *testing.T) {
	b := &Bridge{cfg: Config{Timeout: time.Millisecond}}
	stderr := bytes.NewBufferString("bad input")
	waitErr := exitError(t)

	err := b.classifyExit(context.Background(), expiredContext(t), waitErr, stderr)
	var te *TimeoutError
	if !errors.As(err, &te) {
		t.Errorf("killed by deadline = %T %v, want *TimeoutError", err, err)
	}

	err = b.classifyExit(context.Background(), context.Background(), waitErr, stderr)
	var ce *ComputationError
	if !errors.As(err, &ce) || ce.ExitCode != 3 || ce.Stderr != "bad input" {
		t.Errorf("non-zero exit = %T %v, want *ComputationError{3, bad input}", err, err)
	}

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	err = b.classifyExit(canceled, canceled, waitErr, stderr)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("caller cancel = %v, want context.Canceled", err)
	}
}
