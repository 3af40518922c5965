package store

import (
	"fmt"
	"os"
)

const (
	// PlaceholderTable is the starter table the setup guide creates. It is
	// meant to be deleted once the adopter has a real schema.
	PlaceholderTable = "table1"
)

// CheckExists verifies a database file exists at dbPath.
// Returns true if the file exists, false otherwise.
func CheckExists(dbPath string) (bool, error) {
	info, err := os.Stat(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check database existence: %w", err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("database path is a directory, expected file: %s", dbPath)
	}
	return true, nil
}

// FileSize returns the database file size in bytes, or 0 when missing.
func FileSize(dbPath string) (int64, error) {
	info, err := os.Stat(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to stat database: %w", err)
	}
	return info.Size(), nil
}
