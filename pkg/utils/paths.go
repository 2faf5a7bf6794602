package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const appDirName = "inktrace"

// GetDefaultDataDir returns the per-user directory holding the database.
func GetDefaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(homeDir, "AppData", "Roaming", appDirName)
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", appDirName)
	default: // Primarily Linux, but also other UNIX-like systems.
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName)
		}
		return filepath.Join(homeDir, ".local", "share", appDirName)
	}
}

// GetDefaultConfigDir returns the directory searched for config.yaml.
func GetDefaultConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName)
	}
	return GetDefaultDataDir()
}

// GetDefaultDBPathOnly returns a system-appropriate default path for the database
func GetDefaultDBPathOnly() string {
	return filepath.Join(GetDefaultDataDir(), "inktrace.db")
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory to expand path '%s': %w", path, err)
	}
	return filepath.Join(homeDir, path[2:]), nil
}

// ResolveAndEnsureDBPath turns providedPath (or the default when empty) into
// an absolute path and creates its parent directory.
func ResolveAndEnsureDBPath(providedPath string) (string, error) {
	targetPath := providedPath
	if targetPath == "" {
		targetPath = GetDefaultDBPathOnly()
	}

	targetPath, err := ExpandHome(targetPath)
	if err != nil {
		return "", err
	}

	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for '%s': %w", targetPath, err)
	}
	targetPath = absPath

	dbDir := filepath.Dir(targetPath)
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory '%s' for database: %w", dbDir, err)
		}
	} else if err != nil {
		return "", fmt.Errorf("failed to stat directory '%s' for database: %w", dbDir, err)
	}

	return targetPath, nil
}
