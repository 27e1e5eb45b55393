// Package runtimepath resolves the per-user locations deskwm reads and
// writes outside its configuration file.
package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appName   = "deskwm"
	socketEnv = "DESKWM_SOCKET"
)

// Dir returns the runtime directory holding the daemon socket, trying
// XDG_RUNTIME_DIR, then /run/user/<uid>, then a private directory under
// os.TempDir that is created on demand.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir, nil
	}

	uid := os.Getuid()
	if dir := fmt.Sprintf("/run/user/%d", uid); isDir(dir) {
		return dir, nil
	}

	dir := filepath.Join(os.TempDir(), fmt.Sprintf("%s-runtime-%d", appName, uid))
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return dir, nil
}

// SocketPath returns the daemon IPC socket path. DESKWM_SOCKET overrides
// the default location so several shells can run side by side.
func SocketPath() (string, error) {
	if p := os.Getenv(socketEnv); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName+".sock"), nil
}

// DataDir returns the directory for persistent deskwm data such as the
// action journal: $XDG_DATA_HOME/deskwm, else ~/.local/share/deskwm.
// The directory is not created.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, ".local", "share", appName)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
