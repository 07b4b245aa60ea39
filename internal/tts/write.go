package tts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// The two writes WriteSavedObject performs, named in WriteError.Kind.
const (
	WriteObject = "object"
	WriteIcon   = "icon"
)

// WriteError reports which of the two saved-object writes failed.
type WriteError struct {
	Kind string
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s file %s: %v", e.Kind, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ErrNoSavedObjectsDir means the simulator's Saved Objects directory
// could not be located on this platform.
var ErrNoSavedObjectsDir = errors.New("could not locate the Tabletop Simulator Saved Objects directory")

// WriteSavedObject stores a saved object the way the simulator lays
// them out: the serialized object at path with a ".json" extension and
// its icon next to it with ".png". An existing extension on path is
// replaced. The first failing write aborts; the icon is not attempted
// after a failed object write.
func WriteSavedObject(path string, contents, icon []byte) error {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	objectPath := base + ".json"
	if err := os.WriteFile(objectPath, contents, 0o644); err != nil {
		return &WriteError{Kind: WriteObject, Path: objectPath, Err: err}
	}
	iconPath := base + ".png"
	if err := os.WriteFile(iconPath, icon, 0o644); err != nil {
		return &WriteError{Kind: WriteIcon, Path: iconPath, Err: err}
	}
	return nil
}

// SavedObjectsDir returns the simulator's Saved Objects directory for
// the current platform. The simulator ships on Windows, macOS and
// Linux only.
func SavedObjectsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoSavedObjectsDir, err)
	}
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "Documents", "My Games", "Tabletop Simulator", "Saves", "Saved Objects"), nil
	case "darwin":
		return filepath.Join(home, "Library", "Tabletop Simulator", "Saves", "Saved Objects"), nil
	case "linux":
		return filepath.Join(home, ".local", "share", "Tabletop Simulator", "Saves", "Saved Objects"), nil
	default:
		return "", ErrNoSavedObjectsDir
	}
}
