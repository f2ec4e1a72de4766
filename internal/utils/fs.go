package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DirCheckResult represents the result of dir checks
type DirCheckResult struct {
	Exists   bool
	Writable bool
	Error    error
}

// FileExists simply checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FileSize returns the size of path in bytes.
func FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// EnsureDir creates directory if it doesn't exist
func EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// ResetDir removes dirPath with everything below it and creates it again empty.
// It refuses to touch the filesystem root and the current directory.
func ResetDir(dirPath string) error {
	clean := filepath.Clean(dirPath)
	if clean == "." || clean == string(filepath.Separator) || clean == filepath.VolumeName(clean)+string(filepath.Separator) {
		return fmt.Errorf("refusing to reset %q", dirPath)
	}
	if err := os.RemoveAll(clean); err != nil {
		return fmt.Errorf("failed to clear %s: %w", clean, err)
	}
	log.Debugf("Reset output directory %s", clean)
	return EnsureDir(clean)
}

// SaveTOMLFile saves a struct to a TOML file
func SaveTOMLFile(data any, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		log.Errorf("Failed to create file: %v", err)
		return err
	}
	defer file.Close()
	encoder := toml.NewEncoder(file)
	return encoder.Encode(data)
}

// GetAbsolutePath returns the absolute path of a file
func GetAbsolutePath(path string) string {
	if path == "" {
		return "unknown"
	}

	if !filepath.IsAbs(path) {
		if absPath, err := filepath.Abs(path); err == nil {
			return absPath
		}
	}
	return path
}

// testWriteAccess tests if a directory can be written to
func testWriteAccess(dirPath string) bool {
	testFile := filepath.Join(dirPath, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		log.Warnf("Cannot write to directory %s: %v", dirPath, err)
		return false
	}
	file.Close()
	os.Remove(testFile)
	return true
}

// CheckDirStatus reports whether dirPath exists and whether it can be written. A missing
// directory is writable when its nearest existing ancestor is. Nothing is created.
func CheckDirStatus(dirPath string) DirCheckResult {
	result := DirCheckResult{}
	target := filepath.Clean(dirPath)
	dir := target
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				result.Error = fmt.Errorf("%s is not a directory", dir)
				return result
			}
			break
		}
		if !errors.Is(err, os.ErrNotExist) {
			result.Error = err
			return result
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			result.Error = err
			return result
		}
		dir = parent
	}
	result.Exists = dir == target
	result.Writable = testWriteAccess(dir)
	return result
}
