package slipgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"slipgen/internal/logging"
)

// Bridge runs the generator with a fixed configuration. It holds no
// per-call state and is safe for concurrent use.
type Bridge struct {
	cfg Config
	log *slog.Logger
}

// NewBridge returns a bridge for cfg. A nil logger uses the "slipgen"
// component logger.
func NewBridge(cfg Config, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = logging.New("slipgen")
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	return &Bridge{cfg: cfg, log: logger}
}

// Config returns the bridge configuration.
func (b *Bridge) Config() Config {
	return b.cfg
}

// Run performs one round trip with the generator: encode the request into a
// fresh work directory, run the generator there, and decode its response.
// The work directory is removed on return unless Config.KeepWorkDir is set.
func (b *Bridge) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	rl := b.log.With("run_id", runID)

	workDir, err := b.makeWorkDir(runID)
	if err != nil {
		return nil, err
	}
	if b.cfg.KeepWorkDir {
		rl.Info("keeping work directory", "work_dir", workDir)
	} else {
		defer func() {
			if rmErr := os.RemoveAll(workDir); rmErr != nil {
				rl.Warn("remove work directory", "work_dir", workDir, "err", rmErr)
			}
		}()
	}

	if err := WriteRequestFile(filepath.Join(workDir, RequestFile), req); err != nil {
		return nil, err
	}

	stdout, err := b.invoke(ctx, rl, workDir)
	if err != nil {
		return nil, err
	}

	if req.ShowOutput {
		rl.Debug("generator output", "stdout", stdout)
		if _, err := io.WriteString(b.cfg.Output, stdout); err != nil {
			rl.Warn("write generator output", "err", err)
		}
	}

	x, y, z, err := ReadResponseFile(filepath.Join(workDir, ResponseFile), req.LN, req.WN)
	if err != nil {
		rl.Warn("decode response failed", "err", err)
		return nil, err
	}

	res := &Result{RunID: runID, X: x, Y: y, Z: z, Stdout: stdout}
	if b.cfg.KeepWorkDir {
		res.WorkDir = workDir
	}
	return res, nil
}

func (b *Bridge) makeWorkDir(runID string) (string, error) {
	root := b.cfg.WorkRoot
	if root == "" {
		root = os.TempDir()
	}
	dir := filepath.Join(root, "slipgen-"+runID)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("create work root: %w", err)
	}
	if err := os.Mkdir(dir, 0o700); err != nil {
		return "", fmt.Errorf("create work directory: %w", err)
	}
	return dir, nil
}

// invoke starts the generator in workDir and waits for it. It returns the
// captured stdout on a zero exit status.
func (b *Bridge) invoke(ctx context.Context, rl *slog.Logger, workDir string) (string, error) {
	binary, err := resolveBinary(b.cfg.Binary)
	if err != nil {
		return "", &LaunchError{Binary: b.cfg.Binary, Err: err}
	}

	runCtx := ctx
	if b.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, b.cfg.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, binary)
	cmd.Dir = workDir
	cmd.Env = b.cfg.childEnv()
	cmd.WaitDelay = 5 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	rl.Debug("run begin", "binary", binary, "work_dir", workDir, "timeout", b.cfg.Timeout)
	start := time.Now()

	if err := cmd.Start(); err != nil {
		if ctxErr := b.contextError(ctx, runCtx, &stderr); ctxErr != nil {
			return "", ctxErr
		}
		rl.Warn("launch failed", "binary", binary, "err", err)
		return "", &LaunchError{Binary: binary, Err: err}
	}
	waitErr := cmd.Wait()
	elapsed := time.Since(start)

	if err := b.classifyExit(ctx, runCtx, waitErr, &stderr); err != nil {
		rl.Warn("run failed", "duration", elapsed, "err", err)
		return "", err
	}

	rl.Info("run complete", "duration", elapsed, "stdout_bytes", stdout.Len())
	return stdout.String(), nil
}

// classifyExit maps the result of cmd.Wait to the bridge's error types. A
// zero exit is a success even if the deadline passed after the process
// finished; only a failed wait consults the context, since a kill shows up
// as an exit error.
func (b *Bridge) classifyExit(ctx, runCtx context.Context, waitErr error, stderr *bytes.Buffer) error {
	if waitErr == nil {
		return nil
	}
	if ctxErr := b.contextError(ctx, runCtx, stderr); ctxErr != nil {
		return ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return &ComputationError{ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}
	}
	return fmt.Errorf("wait for slipgen: %w", waitErr)
}

// contextError reports why runCtx ended, if it did: a *TimeoutError when
// the bridge's own deadline fired, the caller's error otherwise.
func (b *Bridge) contextError(ctx, runCtx context.Context, stderr *bytes.Buffer) error {
	if runCtx.Err() == nil {
		return nil
	}
	if ctx.Err() == nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Timeout: b.cfg.Timeout, Stderr: stderr.String()}
	}
	return fmt.Errorf("slipgen run canceled: %w", ctx.Err())
}

// resolveBinary makes a relative path absolute against the caller's working
// directory, since the generator starts inside its work directory. Bare
// names are left for PATH lookup.
func resolveBinary(name string) (string, error) {
	if filepath.IsAbs(name) || (!strings.ContainsRune(name, filepath.Separator) && !strings.ContainsRune(name, '/')) {
		return name, nil
	}
	return filepath.Abs(name)
}

// Run executes req with the default configuration and SLIPGEN_* overrides
// read from the environment at call time.
func Run(ctx context.Context, req Request) (*Result, error) {
	cfg, err := DefaultConfig().FromEnv(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	return NewBridge(cfg, nil).Run(ctx, req)
}
