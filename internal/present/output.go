package present

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ErrSurfaceUnavailable means the output could not be shown or written.
// Nothing partial is left behind when it is returned.
var ErrSurfaceUnavailable = errors.New("presentation surface unavailable")

// WriteFile writes data to path through a temp file in the same directory
// and a rename, so readers never observe a partial document.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrSurfaceUnavailable, path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%w: writing %s: %w", ErrSurfaceUnavailable, path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%w: syncing %s: %w", ErrSurfaceUnavailable, path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("%w: closing %s: %w", ErrSurfaceUnavailable, path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}
	if runtime.GOOS == "windows" {
		_ = os.Remove(path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("%w: replacing %s: %w", ErrSurfaceUnavailable, path, err)
	}
	return nil
}

// startCommand launches a detached process. Replaced in tests.
var startCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open shows path in the system browser or default viewer.
func Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}

	var name string
	var args []string
	switch runtime.GOOS {
	case "darwin":
		name, args = "open", []string{abs}
	case "windows":
		name, args = "rundll32", []string{"url.dll,FileProtocolHandler", abs}
	default:
		name, args = "xdg-open", []string{abs}
	}
	if err := startCommand(name, args...); err != nil {
		return fmt.Errorf("%w: launching %s: %w", ErrSurfaceUnavailable, name, err)
	}
	return nil
}
