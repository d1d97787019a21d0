package slipgen

import (
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func lookupFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Binary != DefaultBinary {
		t.Errorf("Binary = %q, want %q", cfg.Binary, DefaultBinary)
	}
	if cfg.LibraryPath != "" {
		t.Errorf("LibraryPath = %q, want empty by default", cfg.LibraryPath)
	}
	if runtime.GOOS == "darwin" && cfg.LibraryPathVar != "DYLD_FALLBACK_LIBRARY_PATH" {
		t.Errorf("LibraryPathVar = %q on darwin", cfg.LibraryPathVar)
	}
	if runtime.GOOS == "linux" && cfg.LibraryPathVar != "LD_LIBRARY_PATH" {
		t.Errorf("LibraryPathVar = %q on linux", cfg.LibraryPathVar)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfig_FromEnv(t *testing.T) {
	cfg, err := DefaultConfig().FromEnv(lookupFrom(map[string]string{
		EnvBinary:         "/opt/slipgen/bin/slipgen",
		EnvLibraryPath:    "/opt/gfortran/lib",
		EnvLibraryPathVar: "DYLD_FALLBACK_LIBRARY_PATH",
		EnvTimeout:        "90s",
		EnvWorkRoot:       "/scratch",
		EnvKeepWorkDir:    "true",
		EnvInheritEnv:     "1",
	}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	want := Config{
		Binary:         "/opt/slipgen/bin/slipgen",
		LibraryPathVar: "DYLD_FALLBACK_LIBRARY_PATH",
		LibraryPath:    "/opt/gfortran/lib",
		InheritEnv:     true,
		Timeout:        90 * time.Second,
		WorkRoot:       "/scratch",
		KeepWorkDir:    true,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig_FromEnvEmptyKeepsDefaults(t *testing.T) {
	cfg, err := DefaultConfig().FromEnv(lookupFrom(map[string]string{EnvBinary: ""}))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config changed (-want +got):\n%s", diff)
	}
}

func TestConfig_FromEnvInvalid(t *testing.T) {
	for _, key := range []string{EnvTimeout, EnvKeepWorkDir, EnvInheritEnv} {
		_, err := DefaultConfig().FromEnv(lookupFrom(map[string]string{key: "soon"}))
		if err == nil || !strings.Contains(err.Error(), key) {
			t.Errorf("%s=soon: err = %v, want an error naming the variable", key, err)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"empty binary", Config{}},
		{"path without var", Config{Binary: "slipgen", LibraryPath: "/lib"}},
		{"negative timeout", Config{Binary: "slipgen", Timeout: -time.Second}},
	}
	for _, tt := range tests {
		if err := tt.cfg.Validate(); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestConfig_ChildEnv(t *testing.T) {
	cfg := Config{
		LibraryPathVar: "DYLD_FALLBACK_LIBRARY_PATH",
		LibraryPath:    "/opt/lib",
		Env:            map[string]string{"B": "2", "A": "1"},
	}
	want := []string{"DYLD_FALLBACK_LIBRARY_PATH=/opt/lib", "A=1", "B=2"}
	if diff := cmp.Diff(want, cfg.childEnv()); diff != "" {
		t.Errorf("childEnv mismatch (-want +got):\n%s", diff)
	}

	if env := (Config{}).childEnv(); env == nil || len(env) != 0 {
		t.Errorf("empty config childEnv = %#v, want empty non-nil slice", env)
	}
}
