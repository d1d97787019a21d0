package slipgen

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strconv"
	"time"
)

// Environment variables read by Config.FromEnv.
const (
	EnvBinary         = "SLIPGEN_BIN"
	EnvLibraryPath    = "SLIPGEN_LIBRARY_PATH"
	EnvLibraryPathVar = "SLIPGEN_LIBRARY_PATH_VAR"
	EnvTimeout        = "SLIPGEN_TIMEOUT"
	EnvWorkRoot       = "SLIPGEN_WORK_ROOT"
	EnvKeepWorkDir    = "SLIPGEN_KEEP_WORKDIR"
	EnvInheritEnv     = "SLIPGEN_INHERIT_ENV"
)

// DefaultBinary is the generator executable looked up on PATH.
const DefaultBinary = "slipgen"

// Config controls how the bridge launches the generator.
type Config struct {
	// Binary is the generator executable, a PATH name or a file path.
	Binary string `yaml:"binary"`

	// LibraryPathVar names the dynamic-library search variable handed to
	// the generator. LibraryPath is its value; empty means the variable is
	// not set.
	LibraryPathVar string `yaml:"library_path_var"`
	LibraryPath    string `yaml:"library_path,omitempty"`

	// Env holds extra variables for the generator.
	Env map[string]string `yaml:"env,omitempty"`

	// InheritEnv passes the caller's environment through before the
	// overrides above. Off by default so the generator sees only what the
	// config names.
	InheritEnv bool `yaml:"inherit_env"`

	// Timeout kills the generator after the given duration; 0 waits
	// indefinitely.
	Timeout time.Duration `yaml:"timeout"`

	// WorkRoot is the parent of per-call work directories; empty means
	// os.TempDir().
	WorkRoot string `yaml:"work_root,omitempty"`

	// KeepWorkDir leaves each call's work directory on disk for inspection.
	KeepWorkDir bool `yaml:"keep_work_dir"`

	// Output receives the generator's stdout when a request sets
	// ShowOutput; nil means os.Stdout.
	Output io.Writer `yaml:"-"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Binary:         DefaultBinary,
		LibraryPathVar: DefaultLibraryPathVar(),
	}
}

// DefaultLibraryPathVar returns the platform's dynamic-library fallback
// search variable.
func DefaultLibraryPathVar() string {
	switch runtime.GOOS {
	case "darwin":
		return "DYLD_FALLBACK_LIBRARY_PATH"
	case "windows":
		return "PATH"
	default:
		return "LD_LIBRARY_PATH"
	}
}

// FromEnv returns a copy of c with SLIPGEN_* variables applied. lookup is
// usually os.LookupEnv.
func (c Config) FromEnv(lookup func(string) (string, bool)) (Config, error) {
	if v, ok := lookup(EnvBinary); ok && v != "" {
		c.Binary = v
	}
	if v, ok := lookup(EnvLibraryPathVar); ok && v != "" {
		c.LibraryPathVar = v
	}
	if v, ok := lookup(EnvLibraryPath); ok {
		c.LibraryPath = v
	}
	if v, ok := lookup(EnvWorkRoot); ok && v != "" {
		c.WorkRoot = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return c, fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v, ok := lookup(EnvKeepWorkDir); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("%s: %w", EnvKeepWorkDir, err)
		}
		c.KeepWorkDir = b
	}
	if v, ok := lookup(EnvInheritEnv); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("%s: %w", EnvInheritEnv, err)
		}
		c.InheritEnv = b
	}
	return c, nil
}

// Validate reports configuration that cannot launch anything.
func (c Config) Validate() error {
	if c.Binary == "" {
		return fmt.Errorf("config: binary is empty")
	}
	if c.LibraryPath != "" && c.LibraryPathVar == "" {
		return fmt.Errorf("config: library_path set without library_path_var")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: negative timeout %s", c.Timeout)
	}
	return nil
}

// childEnv builds the generator's environment. Later entries win, so the
// library variable and Env override anything inherited. The result is never
// nil: a nil exec.Cmd.Env would hand the caller's whole environment over.
func (c Config) childEnv() []string {
	env := []string{}
	if c.InheritEnv {
		env = append(env, os.Environ()...)
	}
	if c.LibraryPath != "" {
		env = append(env, c.LibraryPathVar+"="+c.LibraryPath)
	}
	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+c.Env[k])
	}
	return env
}
