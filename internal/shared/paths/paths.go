package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// File names
const (
	ConfigFileName = "config.json"
	StampFileName  = "info.json"
	IgnoreFileName = ".tccmignore"
)

// DefaultConfigFile returns config.json beside the running executable
func DefaultConfigFile() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), ConfigFileName), nil
}

// StampFile returns the stamp path inside a component directory
func StampFile(dir string) string {
	return filepath.Join(dir, StampFileName)
}

// ArchiveName returns "<dirname>@<version><ext>"
func ArchiveName(dirname, version, ext string) string {
	return dirname + "@" + version + ext
}

// DownloadName returns the local file name of a fetched component
func DownloadName(component string) string {
	return component + ".zip"
}

// PartialName returns the hidden in-progress name for a download
func PartialName(component string) string {
	return "." + DownloadName(component) + ".part"
}

// Dirname returns the base name of a component directory
func Dirname(dir string) string {
	return filepath.Base(filepath.Clean(dir))
}

// Canonical returns an absolute, cleaned, symlink-free form of path.
// When symlinks cannot be resolved the cleaned absolute path is returned.
func Canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// Same reports whether recorded and actual name the same directory.
// Exact string equality always matches.
func Same(recorded, actual string) bool {
	if recorded == actual {
		return true
	}
	if recorded == "" || actual == "" {
		return false
	}
	return Canonical(recorded) == Canonical(actual)
}
