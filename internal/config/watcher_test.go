package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeFile(t, "loom.toml", "[render]\ndelay_ms = 8\n")

	got := make(chan *Config, 4)
	w, err := NewWatcher(path, func(cfg *Config, err error) {
		if err == nil {
			got <- cfg
		}
	}, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[render]\ndelay_ms = 32\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-got:
		if cfg.Render.DelayMS != 32 {
			t.Errorf("delay = %d, want 32", cfg.Render.DelayMS)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload delivered")
	}
}

func TestWatcher_ReportsParseErrors(t *testing.T) {
	path := writeFile(t, "loom.toml", "")

	errs := make(chan error, 4)
	w, err := NewWatcher(path, func(cfg *Config, err error) {
		if err != nil {
			errs <- err
		}
	}, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[render\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case err := <-errs:
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("expected ParseError, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no error delivered")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	path := writeFile(t, "loom.toml", "")
	calls := make(chan struct{}, 4)
	w, err := NewWatcher(path, func(*Config, error) { calls <- struct{}{} }, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(filepath.Dir(path), "other.toml"), []byte("x = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-calls:
		t.Error("changes to other files must not reload")
	case <-time.After(200 * time.Millisecond):
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := w.Close(); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("second Close: %v", err)
	}
}

func TestNewWatcher_Errors(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "c.ini"), nil); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ini: %v", err)
	}
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "c.toml"), nil); err == nil {
		t.Error("missing directory should fail")
	}
}
